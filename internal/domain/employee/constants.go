package employee

type Kind string

const (
	KindBase      Kind = "EMPLOYEE"
	KindFullTime  Kind = "FULL_TIME"
	KindPartTime  Kind = "PART_TIME"
	KindContract  Kind = "CONTRACT"
	KindDeveloper Kind = "DEVELOPER"
	KindTester    Kind = "TESTER"
	KindHR        Kind = "HR"
)

var Kinds = []Kind{
	KindBase,
	KindFullTime,
	KindPartTime,
	KindContract,
	KindDeveloper,
	KindTester,
	KindHR,
}

// ParseKind maps a stored or submitted tag to a Kind. The empty tag is the base variant.
func ParseKind(raw string) (Kind, bool) {
	if raw == "" {
		return KindBase, true
	}
	for _, kind := range Kinds {
		if string(kind) == raw {
			return kind, true
		}
	}
	return "", false
}
