package user

import "strings"

// Classification is the category of user that determines which reservation
// policy applies. The set is open: new classifications become valid by
// registering a policy for them, so this type only rejects empty values.
type Classification string

const (
	ClassificationStudent Classification = "student"
	ClassificationNormal  Classification = "normal"
)

func (c Classification) String() string {
	return string(c)
}

func NewClassification(s string) (Classification, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrInvalidClassification
	}
	return Classification(s), nil
}
