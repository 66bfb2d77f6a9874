package validation

// epochSentinel is the serialized zero date some clients send for a date
// picker that was never touched. It is rejected as an unset borrow date.
const epochSentinel = "1970-01-01T00:00:00.000Z"

func notEpoch(value any) bool {
	s, ok := value.(string)
	if !ok {
		return true
	}
	return s != epochSentinel
}

// CreateAccountSchema validates new account payloads.
var CreateAccountSchema = Schema{
	{Field: "account_id", Rules: []Rule{
		{Kind: IsLength, Min: 5, Max: 32, Message: "Account ID should be between 5 and 32 characters long"},
		{Kind: NotEmpty, Message: "Account ID is required"},
		{Kind: IsString, Message: "Account ID should be a string"},
	}},
	{Field: "name", Rules: []Rule{
		{Kind: IsLength, Min: 5, Max: 32, Message: "Name should be between 5 and 32 characters long"},
		{Kind: NotEmpty, Message: "Account name is required"},
		{Kind: IsString, Message: "Account name should be a string"},
	}},
	{Field: "password", Rules: []Rule{
		{Kind: IsLength, Min: 8, Message: "Password should be at least 8 characters long"},
		{Kind: NotEmpty, Message: "Password is required"},
		{Kind: IsString, Message: "Password should be a string"},
	}},
	{Field: "course", Rules: []Rule{
		{Kind: IsLength, Min: 4, Max: 32, Message: "Course should be between 4 and 32 characters long"},
		{Kind: NotEmpty, Message: "Course is required"},
		{Kind: IsString, Message: "Course should be a string"},
	}},
	{Field: "year_and_section", Rules: []Rule{
		{Kind: IsLength, Min: 4, Max: 32, Message: "Year and section should be between 4 and 32 characters long"},
		{Kind: NotEmpty, Message: "Year and section is required"},
		{Kind: IsString, Message: "Year and section should be a string"},
	}},
	{Field: "email", Rules: []Rule{
		{Kind: IsEmail, Message: "Invalid email format"},
		{Kind: NotEmpty, Message: "Email is required"},
		{Kind: IsString, Message: "Email should be a string"},
	}},
	{Field: "account_type", Rules: []Rule{
		{Kind: IsIn, Allowed: []string{"student", "faculty", "admin"}, Message: "Account type should be either student, faculty, or admin"},
		{Kind: NotEmpty, Message: "Account type is required"},
		{Kind: IsString, Message: "Account type should be a string"},
	}},
}

// UpdateAccountSchema is CreateAccountSchema plus the created_at requirement.
var UpdateAccountSchema = withCreatedAt(CreateAccountSchema)

var CreateBookSchema = Schema{
	{Field: "book_id", Rules: []Rule{
		{Kind: IsLength, Min: 4, Max: 32, Message: "Book ID should be between 4 and 32 characters long"},
		{Kind: NotEmpty, Message: "Book ID is required"},
		{Kind: IsString, Message: "Book ID should be a string"},
		{Kind: IsAlphanumeric, Message: "Book ID should be alphanumeric"},
	}},
	{Field: "author_name", Rules: []Rule{
		{Kind: IsLength, Min: 1, Max: 100, Message: "Author name should be between 1 and 100 characters long"},
		{Kind: NotEmpty, Message: "Author name is required"},
		{Kind: IsString, Message: "Author name should be a string"},
	}},
	{Field: "title_name", Rules: []Rule{
		{Kind: IsLength, Min: 5, Max: 255, Message: "Title name should be between 5 and 255 characters long"},
		{Kind: NotEmpty, Message: "Title name is required"},
		{Kind: IsString, Message: "Title name should be a string"},
	}},
	{Field: "type", Rules: []Rule{
		{Kind: IsLength, Min: 1, Max: 20, Message: "Type should be between 1 and 20 characters long"},
		{Kind: NotEmpty, Message: "Type is required"},
		{Kind: IsString, Message: "Type should be a string"},
	}},
	{Field: "status", Rules: []Rule{
		{Kind: IsLength, Min: 1, Max: 20, Message: "Status should be between 1 and 20 characters long"},
		{Kind: NotEmpty, Message: "Status is required"},
		{Kind: IsString, Message: "Status should be a string"},
	}},
}

var UpdateBookSchema = withCreatedAt(CreateBookSchema)

var CreateAcademicPaperSchema = Schema{
	{Field: "acadp_id", Rules: []Rule{
		{Kind: IsLength, Min: 5, Max: 32, Message: "Academic paper ID should be between 5 and 32 characters long"},
		{Kind: NotEmpty, Message: "Academic paper ID is required"},
		{Kind: IsString, Message: "Academic paper ID should be a string"},
	}},
	{Field: "author_name", Rules: []Rule{
		{Kind: IsLength, Min: 5, Max: 32, Message: "Author name should be between 5 and 32 characters long"},
		{Kind: NotEmpty, Message: "Author name is required"},
		{Kind: IsString, Message: "Author name should be a string"},
	}},
	{Field: "title_name", Rules: []Rule{
		{Kind: IsLength, Min: 5, Max: 64, Message: "Title name should be between 5 and 64 characters long"},
		{Kind: NotEmpty, Message: "Title name is required"},
		{Kind: IsString, Message: "Title name should be a string"},
	}},
	{Field: "status", Rules: []Rule{
		{Kind: IsIn, Allowed: []string{"available", "borrowed", "archived"}, Message: "Status should be either available, borrowed or archived"},
		{Kind: NotEmpty, Message: "Status is required"},
		{Kind: IsString, Message: "Status should be a string"},
	}},
	{Field: "academic_year", Rules: []Rule{
		{Kind: IsInt, Message: "Academic year should be a number"},
		{Kind: NotEmpty, Message: "Academic year is required"},
	}},
	{Field: "course", Rules: []Rule{
		{Kind: IsLength, Min: 4, Max: 64, Message: "Course name should be between 4 and 64 characters long"},
		{Kind: NotEmpty, Message: "Course name is required"},
		{Kind: IsString, Message: "Course name should be a string"},
	}},
	{Field: "type", Rules: []Rule{
		{Kind: IsIn, Allowed: []string{"capstone", "project", "thesis"}, Message: "Type should be (capstone, project or thesis)"},
		{Kind: NotEmpty, Message: "Type is required"},
		{Kind: IsString, Message: "Type should be a string"},
	}},
}

var UpdateAcademicPaperSchema = withCreatedAt(CreateAcademicPaperSchema)

var CreateActivitySchema = Schema{
	{Field: "account_id", Rules: []Rule{
		{Kind: NotEmpty, Message: "Account ID is required"},
		{Kind: IsString, Message: "Account ID should be a string"},
	}},
	{Field: "activity", Rules: []Rule{
		{Kind: NotEmpty, Message: "Activity is required"},
		{Kind: IsString, Message: "Activity should be a string"},
	}},
}

var UpdateActivitySchema = withCreatedAt(CreateActivitySchema)

var CreateTransactionSchema = Schema{
	{Field: "account_id", Rules: []Rule{
		{Kind: NotEmpty, Message: "Account ID is required"},
		{Kind: IsLength, Min: 5, Message: "Account ID should be 5 characters long"},
		{Kind: IsString, Message: "Account ID should be a string"},
	}},
	{Field: "transaction_id", Rules: []Rule{
		{Kind: NotEmpty, Message: "Transaction ID is required"},
		{Kind: IsLength, Min: 5, Message: "Transaction ID should be 5 characters long"},
		{Kind: IsString, Message: "Transaction ID should be a string"},
	}},
	{Field: "item_id", Rules: []Rule{
		{Kind: NotEmpty, Message: "Item ID is required"},
		{Kind: IsLength, Min: 5, Message: "Item ID should be 5 characters long"},
		{Kind: IsString, Message: "Item ID should be a string"},
	}},
}

// UpdateTransactionSchema additionally requires the borrow date, which must
// not be the unset epoch sentinel, and created_at like every update schema.
var UpdateTransactionSchema = append(append(Schema{}, CreateTransactionSchema...), Schema{
	{Field: "borrow_date", Rules: []Rule{
		{Kind: NotEmpty, Message: "Borrow date is required"},
		{Kind: Custom, Check: notEpoch, Message: "Borrow date is not set"},
	}},
	{Field: "created_at", Rules: []Rule{
		{Kind: NotEmpty, Message: "Created at is required"},
	}},
}...)

func withCreatedAt(base Schema) Schema {
	s := append(Schema{}, base...)
	return append(s, FieldRules{Field: "created_at", Rules: []Rule{
		{Kind: NotEmpty, Message: "Created at is required"},
	}})
}
