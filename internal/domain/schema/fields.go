package schema

// Well-known field names the approval rules, rejection catalog and
// notification flow key on. The catalog only lists entries for the
// names a schema actually carries.
const (
	FieldPhoneNumber        = "phoneNumber"
	FieldBirthDate          = "birthDate"
	FieldAge                = "age"
	FieldCitizenshipStatus  = "citizenshipStatus"
	FieldMonthlySalary      = "monthlySalary"
	FieldMonthlyCommitments = "monthlyCommitments"
	FieldHasMortgage        = "hasMortgage"
	FieldServiceDuration    = "serviceDuration"
)
