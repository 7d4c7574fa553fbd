package constants

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	ChatTypeDM       = "DM"
	ChatTypeGroup    = "GROUP"
	ChatTypePersonal = "PERSONAL"
)

const (
	OrderSectionPending   = "pending"
	OrderSectionRequested = "requested"
)
