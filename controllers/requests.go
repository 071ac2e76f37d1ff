package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"guest-checkin/services"
)

type CreateGuestRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Gender string `json:"gender"`
	Age    string `json:"age"`
	Source string `json:"source"`
}

func (r CreateGuestRequest) input() services.GuestInput {
	return services.GuestInput{
		Name: r.Name, Email: r.Email, Phone: r.Phone,
		Gender: r.Gender, Age: r.Age, Source: r.Source,
	}
}

// UpdateGuestRequest is the PUT body. Absent fields keep their stored value.
type UpdateGuestRequest struct {
	Name        *string    `json:"name"`
	Email       *string    `json:"email"`
	Phone       *string    `json:"phone"`
	Gender      *string    `json:"gender"`
	Age         *string    `json:"age"`
	Source      *string    `json:"source"`
	IsCheckedIn *bool      `json:"isCheckedIn"`
	CheckedInAt *time.Time `json:"checkedInAt"`
}

func (r UpdateGuestRequest) fields() services.GuestFieldsPatch {
	return services.GuestFieldsPatch{
		Name: r.Name, Email: r.Email, Phone: r.Phone,
		Gender: r.Gender, Age: r.Age, Source: r.Source,
	}
}

type CheckInByInfoRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type SendEmailRequest struct {
	Email   string `json:"email"`
	GuestID string `json:"guestId"`
}

type LoginRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	SecurityAnswer string `json:"securityAnswer"`
}

// PatchRequest is one of ToggleCheckinAction, SetCheckinAction or
// PartialUpdateAction.
type PatchRequest interface {
	isPatchRequest()
}

const (
	actionToggleCheckin = "toggle-checkin"
	actionSetCheckin    = "set-checkin"
)

type ToggleCheckinAction struct{}

type SetCheckinAction struct {
	IsCheckedIn bool
	CheckedInAt *time.Time
}

type PartialUpdateAction struct {
	Fields services.GuestFieldsPatch
}

func (ToggleCheckinAction) isPatchRequest() {}
func (SetCheckinAction) isPatchRequest()    {}
func (PartialUpdateAction) isPatchRequest() {}

var errMalformedBody = errors.New("malformed request body")

// DecodePatchRequest picks the PATCH variant from the "action" field. A body
// without an action is a partial update of the listed fields.
func DecodePatchRequest(body []byte) (PatchRequest, error) {
	var head struct {
		Action      *string    `json:"action"`
		IsCheckedIn *bool      `json:"isCheckedIn"`
		CheckedInAt *time.Time `json:"checkedInAt"`
	}
	if err := json.Unmarshal(body, &head); err != nil {
		return nil, errMalformedBody
	}

	if head.Action != nil {
		switch *head.Action {
		case actionToggleCheckin:
			return ToggleCheckinAction{}, nil
		case actionSetCheckin:
			if head.IsCheckedIn == nil {
				return nil, fmt.Errorf("%s requires isCheckedIn", actionSetCheckin)
			}
			return SetCheckinAction{IsCheckedIn: *head.IsCheckedIn, CheckedInAt: head.CheckedInAt}, nil
		default:
			return nil, fmt.Errorf("unknown action %q", *head.Action)
		}
	}

	var fields struct {
		Name   *string `json:"name"`
		Email  *string `json:"email"`
		Phone  *string `json:"phone"`
		Gender *string `json:"gender"`
		Age    *string `json:"age"`
		Source *string `json:"source"`
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, errMalformedBody
	}
	return PartialUpdateAction{Fields: services.GuestFieldsPatch{
		Name:   fields.Name,
		Email:  fields.Email,
		Phone:  fields.Phone,
		Gender: fields.Gender,
		Age:    fields.Age,
		Source: fields.Source,
	}}, nil
}
