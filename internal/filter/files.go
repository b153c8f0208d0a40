package filter

// FilePriorityWords is the closed universe for the file priority key.
var FilePriorityWords = []string{"low", "normal", "high"}

// Files builds the filter registry for the file list of a single torrent.
func Files() *Registry {
	return mustRegistry(NewRegistry("file", fileBooleans, fileComparatives, "name"))
}

var fileBooleans = []BooleanSpec{
	{
		Name:        "all",
		Aliases:     []string{"*"},
		Description: "All files",
	},
	{
		Name:        "complete",
		Aliases:     []string{"cmp"},
		Description: "Fully downloaded files",
		Keys:        []string{"%downloaded"},
		Test: func(it Item) bool {
			f, ok := toFloat(it.Value("%downloaded"))
			return ok && f >= 100
		},
	},
}

var fileComparatives = []ComparativeSpec{
	{
		Name:        "wanted",
		Description: "Files marked for download",
		Keys:        []string{"wanted"},
		Parse:       parseFlag,
		Get:         getFlag("wanted"),
		AsBool:      func(it Item) bool { return toBool(it.Value("wanted")) },
	},
	{
		Name:        "name",
		Description: "File name",
		Keys:        []string{"name"},
		Parse:       parseStr,
		Get:         getStr("name"),
	},
	{
		Name:        "path",
		Aliases:     []string{"dir"},
		Description: "Path within the torrent",
		Keys:        []string{"path"},
		Parse:       parsePath,
		Get:         getPath("path"),
	},
	{
		Name:        "size",
		Description: "File size",
		Keys:        []string{"size"},
		Parse:       parseSize,
		Get:         getSize("size"),
	},
	{
		Name:        "downloaded",
		Description: "Downloaded bytes",
		Keys:        []string{"downloaded"},
		Parse:       parseSize,
		Get:         getSize("downloaded"),
	},
	{
		Name:        "%downloaded",
		Aliases:     []string{"%done", "progress"},
		Description: "Percentage downloaded",
		Keys:        []string{"%downloaded"},
		Parse:       parsePercent,
		Get:         getPercent("%downloaded"),
	},
	{
		Name:        "priority",
		Aliases:     []string{"prio"},
		Description: "Download priority",
		Keys:        []string{"priority"},
		Parse:       parseOption(FilePriorityWords...),
		Get:         getOption("priority", FilePriorityWords...),
	},
}
