package model

// Profile is the authenticated user's own profile as served by
// `/profile`. Field names follow the upstream payload.
type Profile struct {
	UserID             string          `json:"user_id"`
	Email              string          `json:"user_email"`
	FullName           string          `json:"user_fullname"`
	MyKadNumber        string          `json:"user_mykad_number,omitempty"`
	MobileNumber       string          `json:"user_mobile_number,omitempty"`
	Gender             string          `json:"user_gender,omitempty"`
	DateOfBirth        string          `json:"user_date_of_birth,omitempty"`
	ResidentialAddress string          `json:"user_residential_address,omitempty"`
	Postcode           string          `json:"user_postcode,omitempty"`
	City               string          `json:"user_city,omitempty"`
	State              string          `json:"user_state,omitempty"`
	Role               Role            `json:"user_role"`
	CreatedAt          string          `json:"user_created_at,omitempty"`
	LastLoggedIn       string          `json:"user_last_logged_in,omitempty"`
	SpouseName         string          `json:"user_spouse_name,omitempty"`
	SpouseMobilePhone  string          `json:"user_spouse_mobile_phone,omitempty"`
	SocialMedia        string          `json:"user_social_media,omitempty"`
	Avatar             string          `json:"avatar,omitempty"`
	EmailNotifications bool            `json:"email_notifications"`
	SMSNotifications   bool            `json:"sms_notifications"`
	IsOperator         bool            `json:"is_operator,omitempty"`
	OperatorStates     []OperatorState `json:"operator_states,omitempty"`
}

// ProfileUpdate carries the editable profile fields. Pointers
// distinguish "unchanged" from "cleared" so partial updates pass
// through untouched fields.
type ProfileUpdate struct {
	FullName           *string           `json:"fullname,omitempty"`
	MyKadNumber        *string           `json:"mykad_number,omitempty"`
	MobileNumber       *string           `json:"mobile_number,omitempty"`
	Gender             *string           `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	DateOfBirth        *string           `json:"date_of_birth,omitempty"`
	ResidentialAddress *string           `json:"residential_address,omitempty"`
	Postcode           *string           `json:"postcode,omitempty"`
	City               *string           `json:"city,omitempty"`
	State              *string           `json:"state,omitempty"`
	SpouseName         *string           `json:"spouse_name,omitempty"`
	SpouseMobilePhone  *string           `json:"spouse_mobile_phone,omitempty"`
	SocialMedia        map[string]string `json:"social_media,omitempty"`
}

// NotificationPrefs toggles the profile's notification channels.
type NotificationPrefs struct {
	EmailNotifications bool `json:"email_notifications"`
	SMSNotifications   bool `json:"sms_notifications"`
}
