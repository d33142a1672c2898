package models

// Gender of a patient or checkout subject.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ServiceType chooses between sample pickup at home and a lab visit.
type ServiceType string

const (
	ServiceHome ServiceType = "home"
	ServiceLab  ServiceType = "lab"
)

// TimeSlot is the preferred part of the day for the visit.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
)

// UserDetails is the checkout draft for the current session.
type UserDetails struct {
	FullName             string      `json:"fullName" validate:"required"`
	Age                  string      `json:"age"`
	Phone                string      `json:"phone" validate:"required"`
	Gender               Gender      `json:"gender" validate:"omitempty,oneof=male female other"`
	Address              string      `json:"address" validate:"required_if=ServiceType home"`
	ServiceType          ServiceType `json:"serviceType" validate:"required,oneof=home lab"`
	TimeSlot             TimeSlot    `json:"timeSlot" validate:"omitempty,oneof=morning afternoon evening"`
	DoctorName           string      `json:"doctorName,omitempty"`
	PrescriptionAttached bool        `json:"prescriptionAttached,omitempty"`
}

// DefaultUserDetails is the draft a fresh session starts with.
func DefaultUserDetails() UserDetails {
	return UserDetails{
		Gender:      GenderFemale,
		ServiceType: ServiceHome,
		TimeSlot:    SlotMorning,
	}
}

// UserPatch is a partial update of UserDetails. Nil fields are left untouched.
type UserPatch struct {
	FullName             *string      `json:"fullName,omitempty"`
	Age                  *string      `json:"age,omitempty"`
	Phone                *string      `json:"phone,omitempty"`
	Gender               *Gender      `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Address              *string      `json:"address,omitempty"`
	ServiceType          *ServiceType `json:"serviceType,omitempty" validate:"omitempty,oneof=home lab"`
	TimeSlot             *TimeSlot    `json:"timeSlot,omitempty" validate:"omitempty,oneof=morning afternoon evening"`
	DoctorName           *string      `json:"doctorName,omitempty"`
	PrescriptionAttached *bool        `json:"prescriptionAttached,omitempty"`
}

// Merge returns u with every non-nil field of p applied.
func (u UserDetails) Merge(p UserPatch) UserDetails {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.ServiceType != nil {
		u.ServiceType = *p.ServiceType
	}
	if p.TimeSlot != nil {
		u.TimeSlot = *p.TimeSlot
	}
	if p.DoctorName != nil {
		u.DoctorName = *p.DoctorName
	}
	if p.PrescriptionAttached != nil {
		u.PrescriptionAttached = *p.PrescriptionAttached
	}
	return u
}

// Patient is a saved profile that can prefill checkout.
type Patient struct {
	ID       string `json:"id"`
	FullName string `json:"fullName" validate:"required"`
	Age      string `json:"age" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Gender   Gender `json:"gender" validate:"omitempty,oneof=male female other"`
	Address  string `json:"address,omitempty"`
}
