package filter

// Peers builds the filter registry for the peer list of a single torrent.
func Peers() *Registry {
	return mustRegistry(NewRegistry("peer", peerBooleans, peerComparatives, "host"))
}

var peerBooleans = []BooleanSpec{
	{
		Name:        "all",
		Aliases:     []string{"*"},
		Description: "All peers",
	},
	{
		Name:        "uploading",
		Aliases:     []string{"up"},
		Description: "Peers we are uploading to",
		Keys:        []string{"rate-up"},
		Test: func(it Item) bool {
			n, ok := toInt64(it.Value("rate-up"))
			return ok && n > 0
		},
	},
	{
		Name:        "downloading",
		Aliases:     []string{"dn"},
		Description: "Peers we are downloading from",
		Keys:        []string{"rate-down"},
		Test: func(it Item) bool {
			n, ok := toInt64(it.Value("rate-down"))
			return ok && n > 0
		},
	},
	{
		Name:        "seeding",
		Description: "Peers that have the complete torrent",
		Keys:        []string{"%downloaded"},
		Test: func(it Item) bool {
			f, ok := toFloat(it.Value("%downloaded"))
			return ok && f >= 100
		},
	},
}

var peerComparatives = []ComparativeSpec{
	{
		Name:        "host",
		Aliases:     []string{"address", "ip"},
		Description: "Peer address",
		Keys:        []string{"host"},
		Parse:       parseStr,
		Get:         getStr("host"),
	},
	{
		Name:        "port",
		Description: "Peer port",
		Keys:        []string{"port"},
		Parse:       parseCount,
		Get:         getCount("port"),
	},
	{
		Name:        "client",
		Description: "Peer client name",
		Keys:        []string{"client"},
		Parse:       parseStr,
		Get:         getStr("client"),
	},
	{
		Name:        "%downloaded",
		Aliases:     []string{"%done", "progress"},
		Description: "Peer's download progress",
		Keys:        []string{"%downloaded"},
		Parse:       parsePercent,
		Get:         getPercent("%downloaded"),
	},
	{
		Name:        "rate-down",
		Aliases:     []string{"rdown"},
		Description: "Rate we download from the peer",
		Keys:        []string{"rate-down"},
		Parse:       parseRate,
		Get:         getRate("rate-down"),
	},
	{
		Name:        "rate-up",
		Aliases:     []string{"rup"},
		Description: "Rate we upload to the peer",
		Keys:        []string{"rate-up"},
		Parse:       parseRate,
		Get:         getRate("rate-up"),
	},
}
