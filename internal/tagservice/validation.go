package tagservice

import "github.com/sushihentaime/inkwell/internal/common"

func validateName(v *common.Validator, name string) {
	v.Check(name != "", "name", "must be provided")
	v.Check(v.MinChars(name, 3), "name", "must be at least 3 characters long")
	v.Check(len(name) <= 50, "name", "must not be more than 50 characters long")
}

func validateDescription(v *common.Validator, description string) {
	v.Check(description != "", "description", "must be provided")
	v.Check(v.MinChars(description, 10), "description", "must be at least 10 characters long")
}
