package schema

// RefLanguageTable represents the 'ref.language' table
type RefLanguageTable struct {
	Table  string
	Alpha2 string
	Alpha3 string
	Name   string
}

// RefLanguage is the schema definition for ref.language
var RefLanguage = RefLanguageTable{
	Table:  "ref.language",
	Alpha2: "alpha2",
	Alpha3: "alpha3",
	Name:   "name",
}

func (t RefLanguageTable) Columns() []string {
	return []string{t.Alpha2, t.Alpha3, t.Name}
}
