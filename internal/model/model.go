package model

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Category string

const (
	CategoryEducation  Category = "Education"
	CategoryNonFiction Category = "NonFiction"
	CategoryFiction    Category = "Fiction"
	CategoryScience    Category = "Science"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryEducation, CategoryNonFiction, CategoryFiction, CategoryScience:
		return true
	}
	return false
}

type Book struct {
	ID          int            `json:"-" db:"id"`
	BookID      string         `json:"bookId" db:"book_id"`
	Title       string         `json:"title" db:"title"`
	Subtitle    string         `json:"subtitle" db:"subtitle"`
	Author      string         `json:"author" db:"author"`
	Publisher   string         `json:"publisher" db:"publisher"`
	Description string         `json:"description" db:"description"`
	Category    Category       `json:"category" db:"category"`
	Image       string         `json:"image" db:"image"`
	Rating      int            `json:"rating" db:"rating"`
	BorrowCount int            `json:"borrowCount" db:"borrow_count"`
	BookPdf     NullString     `json:"bookPdf" db:"book_pdf"`
	BookAudio   NullString     `json:"bookAudio" db:"book_audio"`
	IsBorrowed  bool           `json:"isBorrowed" db:"is_borrowed"`
}

type BorrowRecord struct {
	ID               int      `json:"-" db:"id"`
	StudentID        string   `json:"studentId" db:"student_id"`
	BookID           int      `json:"-" db:"book_id"`
	TrackingCode     string   `json:"trackingCode" db:"tracking_code"`
	BorrowDate       Date     `json:"borrowDate" db:"borrow_date"`
	DueDate          Date     `json:"dueDate" db:"due_date"`
	ActualReturnDate NullDate `json:"actualReturnDate,omitempty" db:"actual_return_date"`
	LateFee          float64  `json:"lateFee" db:"late_fee"`
}

type User struct {
	ID           int       `json:"-" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	IsStaff      bool      `json:"isStaff" db:"is_staff"`
	IsSuperuser  bool      `json:"isSuperuser" db:"is_superuser"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Date is a date-only value rendered as "2006-01-02" in JSON.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: t.Truncate(24 * time.Hour)}
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		d.Time = v
		return nil
	}
	return fmt.Errorf("cannot scan %T into Date", value)
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

// NullString renders as a plain string or null instead of the sql.NullString
// struct shape.
type NullString struct {
	sql.NullString
}

func NewNullString(s string) NullString {
	return NullString{NullString: sql.NullString{String: s, Valid: s != ""}}
}

func (s NullString) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte(`null`), nil
	}
	return []byte(strconv.Quote(s.String)), nil
}

func (s *NullString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		s.Valid = false
		return nil
	}
	v, err := strconv.Unquote(string(b))
	if err != nil {
		return err
	}
	s.String, s.Valid = v, v != ""
	return nil
}

type NullDate struct {
	sql.NullTime
}

func (d NullDate) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Time.Format(time.DateOnly) + `"`), nil
}

func (d *NullDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Valid = false
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return err
	}
	d.Time, d.Valid = t, true
	return nil
}

type BookCreateRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Subtitle    string   `json:"subtitle" validate:"required,max=255"`
	Author      string   `json:"author" validate:"required,max=200"`
	Publisher   string   `json:"publisher" validate:"max=200"`
	Description string   `json:"description" validate:"required"`
	Category    Category `json:"category" validate:"required,oneof=Education NonFiction Fiction Science"`
	Image       string   `json:"image" validate:"required"`
	Rating      int      `json:"rating" validate:"min=0,max=5"`
	BookPdf     string   `json:"bookPdf"`
	BookAudio   string   `json:"bookAudio"`
}

type BorrowRequest struct {
	StudentID string `json:"studentId" validate:"required,student_id"`
	DueDate   Date   `json:"dueDate" validate:"required"`
}

type BorrowResponse struct {
	Record BorrowRecord `json:"record"`
	Book   Book         `json:"book"`
}

type ReturnResponse struct {
	Record BorrowRecord `json:"record"`
	Book   Book         `json:"book"`
}

type HomeResponse struct {
	EduBooks        []Book `json:"eduBooks"`
	FictionBooks    []Book `json:"fictionBooks"`
	ScienceBooks    []Book `json:"scienceBooks"`
	NonFictionBooks []Book `json:"nonFictionBooks"`
	TopRated        []Book `json:"topRated"`
	MostBorrowed    []Book `json:"mostBorrowed"`
}

type SearchResponse struct {
	Query string `json:"query"`
	Books []Book `json:"books"`
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,max=30"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Password2 string `json:"password2" validate:"required"`
}

type AuthRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	ExpiresIn   int    `json:"expiresIn"`
	AccessToken string `json:"accessToken"`
}

type EventType string

const (
	EventBorrow EventType = "BORROW"
	EventReturn EventType = "RETURN"
)

// BorrowEvent is the kafka payload for the stats feed.
type BorrowEvent struct {
	TrackingCode string    `json:"trackingCode"`
	EventType    EventType `json:"eventType"`
	BookID       string    `json:"bookId"`
	StudentID    string    `json:"studentId"`
	EventDate    Date      `json:"eventDate"`
}

type BorrowEventRow struct {
	ID           int       `json:"-" db:"id"`
	TrackingCode string    `json:"trackingCode" db:"tracking_code"`
	EventType    EventType `json:"eventType" db:"event_type"`
	BookID       string    `json:"bookId" db:"book_id"`
	StudentID    string    `json:"studentId" db:"student_id"`
	EventDate    time.Time `json:"eventDate" db:"event_date"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
