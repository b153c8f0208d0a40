package filter

// TrackerStatusWords is the closed universe for the tracker status key.
var TrackerStatusWords = []string{"inactive", "waiting", "queued", "announcing", "scraping"}

// Trackers builds the filter registry for the tracker list of a torrent.
func Trackers() *Registry {
	return mustRegistry(NewRegistry("tracker", trackerBooleans, trackerComparatives, "domain"))
}

var trackerBooleans = []BooleanSpec{
	{
		Name:        "all",
		Aliases:     []string{"*"},
		Description: "All trackers",
	},
	{
		Name:        "alive",
		Description: "Trackers whose last announce succeeded",
		Keys:        []string{"error"},
		Test:        func(it Item) bool { return toString(it.Value("error")) == "" },
	},
}

var trackerComparatives = []ComparativeSpec{
	{
		Name:        "domain",
		Aliases:     []string{"host", "tracker"},
		Description: "Tracker domain",
		Keys:        []string{"domain"},
		Parse:       parseStr,
		Get:         getStr("domain"),
	},
	{
		Name:        "url",
		Aliases:     []string{"url-announce"},
		Description: "Announce URL",
		Keys:        []string{"url"},
		Parse:       parseStr,
		Get:         getStr("url"),
	},
	{
		Name:        "url-scrape",
		Description: "Scrape URL",
		Keys:        []string{"url-scrape"},
		Parse:       parseStr,
		Get:         getStr("url-scrape"),
	},
	{
		Name:        "status",
		Description: "Announce state",
		Keys:        []string{"status"},
		Parse:       parseOption(TrackerStatusWords...),
		Get:         getOption("status", TrackerStatusWords...),
	},
	{
		Name:        "tier",
		Description: "Tracker tier",
		Keys:        []string{"tier"},
		Parse:       parseCount,
		Get:         getCount("tier"),
	},
	{
		Name:        "seeds",
		Description: "Seeds reported by the tracker",
		Keys:        []string{"seeds"},
		Parse:       parseCount,
		Get:         getCount("seeds"),
	},
	{
		Name:        "leeches",
		Description: "Leeches reported by the tracker",
		Keys:        []string{"leeches"},
		Parse:       parseCount,
		Get:         getCount("leeches"),
	},
	{
		Name:        "downloads",
		Description: "Downloads reported by the tracker",
		Keys:        []string{"downloads"},
		Parse:       parseCount,
		Get:         getCount("downloads"),
	},
	{
		Name:        "last-announce",
		Description: "Time of the last announce",
		Keys:        []string{"last-announce"},
		Parse:       parseTimePast,
		Get:         getTime("last-announce"),
	},
	{
		Name:        "next-announce",
		Description: "Time of the next announce",
		Keys:        []string{"next-announce"},
		Parse:       parseTimeFuture,
		Get:         getTime("next-announce"),
	},
	{
		Name:        "error",
		Description: "Last announce error message",
		Keys:        []string{"error"},
		Parse:       parseStr,
		Get:         getStr("error"),
		AsBool:      func(it Item) bool { return toString(it.Value("error")) != "" },
	},
}
