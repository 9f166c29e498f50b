package valueobjects

// AccessLevel is what a route demands of the caller's school subscription.
type AccessLevel string

const (
	AccessNone      AccessLevel = "none"
	AccessReadOnly  AccessLevel = "read_only"
	AccessReadWrite AccessLevel = "read_write"
)

func (a AccessLevel) String() string {
	return string(a)
}

func (a AccessLevel) IsValid() bool {
	return a == AccessNone || a == AccessReadOnly || a == AccessReadWrite
}
