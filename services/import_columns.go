package services

import "strings"

// ColumnAliases lists, per guest field, the CSV headers it may come from in
// priority order. The first non-empty cell wins. Headers match exactly.
type ColumnAliases struct {
	FirstName []string
	LastName  []string
	Name      []string
	Email     []string
	Phone     []string
	Gender    []string
	Age       []string
	Source    []string
}

// Headers of the storefront "customers_export" file used for event sign-ups.
var customersExportAliases = ColumnAliases{
	FirstName: []string{"First Name"},
	LastName:  []string{"Last Name"},
	Email:     []string{"Email"},
	Phone:     []string{"Phone"},
	Gender:    []string{"Giới tính  (customer.metafields.custom.gii_tnh_)"},
	Age:       []string{"Độ tuổi làm việc (customer.metafields.custom._tui_lm_vic)"},
	Source:    []string{"Bạn biết thông tin khóa học qua kênh nào? (*) (customer.metafields.custom.bn_bit_thng_tin_kha_hc_qua_knh_no_)"},
}

var genericAliases = ColumnAliases{
	Name:   []string{"name", "Name"},
	Email:  []string{"email"},
	Phone:  []string{"phone"},
	Gender: []string{"gender"},
	Age:    []string{"age"},
	Source: []string{"source"},
}

// MergeAliases concatenates alias lists; earlier schemas take priority.
func MergeAliases(schemas ...ColumnAliases) ColumnAliases {
	var out ColumnAliases
	for _, s := range schemas {
		out.FirstName = append(out.FirstName, s.FirstName...)
		out.LastName = append(out.LastName, s.LastName...)
		out.Name = append(out.Name, s.Name...)
		out.Email = append(out.Email, s.Email...)
		out.Phone = append(out.Phone, s.Phone...)
		out.Gender = append(out.Gender, s.Gender...)
		out.Age = append(out.Age, s.Age...)
		out.Source = append(out.Source, s.Source...)
	}
	return out
}

// DefaultColumnAliases is the vendor export schema with generic fallbacks.
var DefaultColumnAliases = MergeAliases(customersExportAliases, genericAliases)

func firstPresent(cols map[string]string, headers []string) string {
	for _, h := range headers {
		if v := strings.TrimSpace(cols[h]); v != "" {
			return v
		}
	}
	return ""
}
