package model

import "time"

// Business type, sector and category values accepted by the
// registration form. They match the upstream enumerations.
const (
	BusinessTypeSoleProprietorship = "sole-proprietorship"
	BusinessTypePartnership        = "partnership"
	BusinessTypeSdnBhd             = "sdn-bhd"
	BusinessTypeBerhad             = "berhad"

	BusinessSectorManufacturing = "manufacturing"
	BusinessSectorService       = "service"

	BusinessCategoryStartup = "startup"
	BusinessCategoryMicro   = "micro"
	BusinessCategorySmall   = "small"
	BusinessCategoryMedium  = "medium"
	BusinessCategoryLarge   = "large"
)

// Business is a registered business owned by a member.
//
// Fields:
//  ID                    - stable identifier.
//  Name                  - registered company name.
//  SSM                   - 12-digit SSM registration number.
//  Address, Phone        - contact details.
//  Type                  - legal form (sole-proprietorship, ...).
//  Sector                - manufacturing or service.
//  Category              - size band (startup ... large).
//  MOFRegistration       - whether the business is MOF registered.
//  MOFRegistrationNumber - required when MOFRegistration is true.
//  URL                   - optional company website.
type Business struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	SSM                   string     `json:"ssm"`
	Address               string     `json:"address"`
	Phone                 string     `json:"phone"`
	Type                  string     `json:"type"`
	Sector                string     `json:"sector"`
	Category              string     `json:"category"`
	MOFRegistration       bool       `json:"mofRegistration"`
	MOFRegistrationNumber string     `json:"mofRegistrationNumber,omitempty"`
	URL                   string     `json:"url,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             *time.Time `json:"updatedAt,omitempty"`
}

// BusinessForm carries the user-submitted registration fields. The
// validate tags implement the client-side rules the platform
// enforces before any network call: all core fields required, SSM
// must be 12 digits, the phone must look Malaysian, the MOF number
// is required once the MOF flag is set, and the URL, when present,
// must be http(s). The ssm/msisdn validators are registered in the
// businesses service.
type BusinessForm struct {
	Name                  string `json:"name" validate:"required"`
	SSM                   string `json:"ssm" validate:"required,ssm"`
	Address               string `json:"address" validate:"required"`
	Phone                 string `json:"phone" validate:"required,msisdn"`
	Type                  string `json:"type" validate:"required"`
	Sector                string `json:"sector" validate:"required"`
	Category              string `json:"category" validate:"required"`
	MOFRegistration       bool   `json:"mofRegistration"`
	MOFRegistrationNumber string `json:"mofRegistrationNumber" validate:"required_if=MOFRegistration true"`
	URL                   string `json:"url" validate:"omitempty,weburl"`
}

// BusinessList is the upstream response body for a business listing.
type BusinessList struct {
	Businesses []Business `json:"businesses"`
	Pagination Pagination `json:"pagination"`
}
