package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "john@example.com", want: "j**n@e******.com"},
		{in: "jo@x.com", want: "j*@x.com"},
		{in: "not-an-email", want: "not-an-email"},
		{in: " abc@mail.vn ", want: "a*c@m***.vn"},
		{in: "john@", want: "j**n@"},
		{in: "john@localhost", want: "j**n@localhost"},
		{in: "@x.com", want: "@x.com"},
		{in: "a@b@c.com", want: "a@b@c.com"},
		{in: "Đặng@trường.vn", want: "Đ**g@t*****.vn"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskEmail(tt.in))
		})
	}
}

func TestBuildCheckinLink(t *testing.T) {
	assert.Equal(t, "https://event.example/api/guests/abc", BuildCheckinLink("https://event.example/", "abc"))
	assert.Equal(t, "http://localhost:3000/api/guests/abc", BuildCheckinLink("", "abc"))
}
