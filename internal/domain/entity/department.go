package entity

// Departments - фиксированный перечень отделов организации.
// Порядок элементов определяет порядок выдачи клиентам.
var Departments = []string{
	"Systems and Software Department",
	"Networks",
	"Finance Operations",
	"Communications",
	"Business Development",
	"Internal Audit",
}

// IsValidDepartment проверяет, что отдел входит в перечень
func IsValidDepartment(name string) bool {
	for _, d := range Departments {
		if d == name {
			return true
		}
	}
	return false
}
