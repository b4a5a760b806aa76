package schema

// RefCountryTable represents the 'ref.country' table
type RefCountryTable struct {
	Table      string
	Alpha2     string
	Alpha3     string
	Name       string
	CommonName string
}

// RefCountry is the schema definition for ref.country
var RefCountry = RefCountryTable{
	Table:      "ref.country",
	Alpha2:     "alpha2",
	Alpha3:     "alpha3",
	Name:       "name",
	CommonName: "commonname",
}

func (t RefCountryTable) Columns() []string {
	return []string{t.Alpha2, t.Alpha3, t.Name, t.CommonName}
}
