package constants

// User status
const (
	UserStatusActive   = 1
	UserStatusInactive = 0
)

// User roles
const (
	RoleSuperAdmin = 1
	RoleOwner      = 2
	RoleStaff      = 3
)

// Property / property type mapping status
const (
	PropertyStatusUnmapped = 1
	PropertyStatusMapped   = 2
)

// Structure status
const (
	StructureStatusActive   = "active"
	StructureStatusInactive = "inactive"
)

// Payment methods
const (
	PaymentMethodCash         = "cash"
	PaymentMethodCreditCard   = "credit_card"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodOnline       = "online"
)

// Payment status
const (
	PaymentStatusPending       = "pending"
	PaymentStatusPartiallyPaid = "partially_paid"
	PaymentStatusFullyPaid     = "fully_paid"
)

// WeekdayIndex maps weekday names accepted by the bulk price change
// endpoint to time.Weekday-compatible indexes (Monday = 0).
var WeekdayIndex = map[string]int{
	"Monday":    0,
	"Tuesday":   1,
	"Wednesday": 2,
	"Thursday":  3,
	"Friday":    4,
	"Saturday":  5,
	"Sunday":    6,
}
