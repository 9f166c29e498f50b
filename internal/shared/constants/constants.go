package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Gin context keys set by the auth middleware.
	ContextKeyUserID    = "user_id"
	ContextKeyRoles     = "user_roles"
	ContextKeySchoolID  = "school_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyRequestID = "request_id"

	TableSchools             = "schools"
	TableSubscriptionPlans   = "subscription_plans"
	TableSchoolSubscriptions = "school_subscriptions"
	TablePaymentTransactions = "payment_transactions"

	// DefaultGracePeriodDays is how long read-only access survives an expired subscription.
	DefaultGracePeriodDays = 14

	// PayOS reports a successful payment with this result code and status.
	PayOSSuccessCode   = "00"
	PayOSStatusPaid    = "PAID"
	PayOSDescMaxLength = 25

	CurrencyVND = "VND"
)
