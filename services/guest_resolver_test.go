package services

import (
	"context"
	"strconv"
	"testing"

	"guest-checkin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveByToken_CustomIDWinsOverEmailSubstring(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		models.Guest{CustomID: "other", Email: "vip@x.com"},
		models.Guest{CustomID: "vip", Email: "someone@y.com"},
	)

	got, err := f.resolver.ResolveByToken(context.Background(), "vip")
	require.NoError(t, err)
	assert.Equal(t, "vip", got.CustomID)
}

func TestResolveByToken_Cascade(t *testing.T) {
	f := newFixture(t)
	seeded := f.seed(t,
		models.Guest{CustomID: "abc", Email: "john@x.com"},
		models.Guest{CustomID: "def", Email: "mary@x.com"},
	)
	ctx := context.Background()

	tests := []struct {
		name  string
		token string
		want  string
		kind  ErrorKind
	}{
		{name: "custom id", token: "def", want: "def"},
		{name: "internal id", token: strconv.FormatUint(uint64(seeded[1].ID), 10), want: "def"},
		{name: "email substring", token: "jo", want: "abc"},
		{name: "email substring any case", token: "MARY@", want: "def"},
		{name: "trimmed", token: "  abc ", want: "abc"},
		{name: "empty", token: "", kind: KindInvalidArgument},
		{name: "blank", token: "   ", kind: KindInvalidArgument},
		{name: "unknown", token: "nobody", kind: KindNotFound},
		{name: "unknown numeric id", token: "9999", kind: KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.resolver.ResolveByToken(ctx, tt.token)
			if tt.kind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.kind, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.CustomID)
		})
	}
}

func TestResolveByID_NoEmailFallback(t *testing.T) {
	f := newFixture(t)
	f.seed(t, models.Guest{CustomID: "abc", Email: "john@x.com"})

	_, _, err := f.resolver.ResolveByID(context.Background(), "john")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseInternalID(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"1", true},
		{"42", true},
		{"0", false},
		{"-3", false},
		{"12a", false},
		{"", false},
		{"99999999999999999999999", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, ok := parseInternalID(tt.in)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestResolveByContactInfo(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		models.Guest{CustomID: "a", Name: "Alice Nguyen", Email: "alice@x.com", Phone: "0911111111"},
		models.Guest{CustomID: "b", Name: "Bob Tran", Email: "bob@x.com", Phone: "0901234567"},
		models.Guest{CustomID: "c", Name: "Đặng Văn An"},
	)
	ctx := context.Background()

	tests := []struct {
		name string
		info ContactInfo
		want string
		kind ErrorKind
	}{
		{name: "email beats phone", info: ContactInfo{Email: "alice@x.com", Phone: "0901234567"}, want: "a"},
		{name: "email any case", info: ContactInfo{Email: " ALICE@X.COM "}, want: "a"},
		{name: "email must be whole", info: ContactInfo{Email: "alice"}, kind: KindNotFound},
		{name: "phone normalized", info: ContactInfo{Phone: "'+84 901 234 567"}, want: "b"},
		{name: "unknown email falls to phone", info: ContactInfo{Email: "zed@x.com", Phone: "0901234567"}, want: "b"},
		{name: "phone beats name", info: ContactInfo{Name: "Alice Nguyen", Phone: "0901234567"}, want: "b"},
		{name: "name any case", info: ContactInfo{Name: "bob tran"}, want: "b"},
		{name: "name with diacritic capital", info: ContactInfo{Name: "Đặng Văn An"}, want: "c"},
		{name: "name with diacritic any case", info: ContactInfo{Name: " đẶNG văn an "}, want: "c"},
		{name: "nothing given", info: ContactInfo{Name: "  "}, kind: KindInvalidArgument},
		{name: "nothing matches", info: ContactInfo{Name: "Carol"}, kind: KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.resolver.ResolveByContactInfo(ctx, tt.info)
			if tt.kind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.kind, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.CustomID)
		})
	}
}
