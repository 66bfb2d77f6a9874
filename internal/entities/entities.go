package entities

import "time"

type AccountType string

const (
	AccountTypeStudent AccountType = "student"
	AccountTypeFaculty AccountType = "faculty"
	AccountTypeAdmin   AccountType = "admin"
)

type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "available"
	ItemStatusBorrowed  ItemStatus = "borrowed"
	ItemStatusArchived  ItemStatus = "archived"
)

type PaperType string

const (
	PaperTypeCapstone PaperType = "capstone"
	PaperTypeProject  PaperType = "project"
	PaperTypeThesis   PaperType = "thesis"
)

// Account is the authentication principal. AccountID is the business key
// (student number or staff id); Password holds the bcrypt hash and is never
// serialized.
type Account struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	AccountID      string      `gorm:"uniqueIndex;size:32" json:"account_id"`
	Name           string      `gorm:"size:32" json:"name"`
	Password       string      `gorm:"size:100" json:"-"`
	Course         string      `gorm:"size:32" json:"course"`
	YearAndSection string      `gorm:"column:year_and_section;size:32" json:"year_and_section"`
	Email          string      `gorm:"size:255" json:"email"`
	AccountType    AccountType `gorm:"size:20" json:"account_type"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type Book struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BookID     string    `gorm:"uniqueIndex;size:32" json:"book_id"`
	AuthorName string    `gorm:"size:100" json:"author_name"`
	TitleName  string    `gorm:"size:255" json:"title_name"`
	Type       string    `gorm:"size:20" json:"type"`
	Status     string    `gorm:"size:20" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type AcademicPaper struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AcadpID      string    `gorm:"column:acadp_id;uniqueIndex;size:32" json:"acadp_id"`
	AuthorName   string    `gorm:"size:32" json:"author_name"`
	TitleName    string    `gorm:"size:64" json:"title_name"`
	Status       string    `gorm:"size:20" json:"status"`
	AcademicYear int       `json:"academic_year"`
	Course       string    `gorm:"size:64" json:"course"`
	Type         string    `gorm:"size:20" json:"type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Activity is an audit trail entry. AccountID references an account's
// business key but is deliberately not an enforced foreign key.
type Activity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AccountID string    `gorm:"index;size:32" json:"account_id"`
	Activity  string    `gorm:"type:text" json:"activity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Transaction records one borrow cycle. ItemID is a weak reference into
// either books or academic_papers by business key; no cascading delete is
// performed, so a dangling ItemID is possible when an item is removed.
type Transaction struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	AccountID     string     `gorm:"index;size:32" json:"account_id"`
	TransactionID string     `gorm:"column:transaction_id;uniqueIndex;size:32" json:"transaction_id"`
	ItemID        string     `gorm:"index;size:32" json:"item_id"`
	BorrowDate    time.Time  `json:"borrow_date"`
	DueDate       time.Time  `json:"due_date"`
	ReturnDate    *time.Time `json:"return_date,omitempty"`
	Status        string     `gorm:"size:40" json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

func (Book) TableName() string {
	return "books"
}

func (AcademicPaper) TableName() string {
	return "academic_papers"
}

func (Activity) TableName() string {
	return "activities"
}

func (Transaction) TableName() string {
	return "transactions"
}
