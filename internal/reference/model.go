package reference

// Languages — справочник языков сайта (reference/languages.yaml)
type Languages struct {
	Name  string     `yaml:"name" json:"name"`
	Items []Language `yaml:"items" json:"items"`
}

// Language — один язык. UID совпадает со значением колонки языка в таблицах.
type Language struct {
	UID   int    `yaml:"uid" json:"uid"`
	Code  string `yaml:"code" json:"code"`
	Title string `yaml:"title" json:"title"`
	// Hidden: язык есть в данных, но не отдаётся в /api/languages
	Hidden bool `yaml:"hidden,omitempty" json:"-"`
}
