package valueobjects

type PaymentMethod string

// PaymentMethodPayOS is the hosted checkout. It is the only method wired today.
const PaymentMethodPayOS PaymentMethod = "payos"

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodPayOS
}

type PaymentPurpose string

const (
	PurposeSchoolSubscription PaymentPurpose = "school_subscription"
	PurposeCreditPackage      PaymentPurpose = "credit_package"
)

func (p PaymentPurpose) String() string {
	return string(p)
}

func (p PaymentPurpose) IsValid() bool {
	return p == PurposeSchoolSubscription || p == PurposeCreditPackage
}
