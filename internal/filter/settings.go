package filter

// Settings builds the filter registry for the session settings list.
func Settings() *Registry {
	return mustRegistry(NewRegistry("setting", settingBooleans, settingComparatives, "name"))
}

var settingBooleans = []BooleanSpec{
	{
		Name:        "all",
		Aliases:     []string{"*"},
		Description: "All settings",
	},
	{
		Name:        "changed",
		Description: "Settings that differ from their default",
		Keys:        []string{"changed"},
		Test:        func(it Item) bool { return toBool(it.Value("changed")) },
	},
}

var settingComparatives = []ComparativeSpec{
	{
		Name:        "name",
		Description: "Setting name",
		Keys:        []string{"name"},
		Parse:       parseStr,
		Get:         getStr("name"),
	},
	{
		Name:        "value",
		Description: "Current value, rendered as text",
		Keys:        []string{"value"},
		Parse:       parseStr,
		Get:         getStr("value"),
	},
	{
		Name:        "description",
		Aliases:     []string{"desc"},
		Description: "Setting description",
		Keys:        []string{"description"},
		Parse:       parseStr,
		Get:         getStr("description"),
	},
}
