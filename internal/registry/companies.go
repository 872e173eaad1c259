package registry

// companyToTicker maps common company name variants to their symbol.
// Only applied to symbols that are configured in the tickers table.
var companyToTicker = map[string]string{
	// Tech
	"apple":      "AAPL",
	"microsoft":  "MSFT",
	"alphabet":   "GOOGL",
	"google":     "GOOGL",
	"amazon":     "AMZN",
	"meta":       "META",
	"facebook":   "META",
	"tesla":      "TSLA",
	"nvidia":     "NVDA",
	"netflix":    "NFLX",
	"adobe":      "ADBE",
	"salesforce": "CRM",
	"oracle":     "ORCL",
	"intel":      "INTC",
	"amd":        "AMD",
	"ibm":        "IBM",
	"cisco":      "CSCO",
	"qualcomm":   "QCOM",

	// Finance
	"jpmorgan":         "JPM",
	"jp morgan":        "JPM",
	"bank of america":  "BAC",
	"wells fargo":      "WFC",
	"goldman sachs":    "GS",
	"morgan stanley":   "MS",
	"citigroup":        "C",
	"visa":             "V",
	"mastercard":       "MA",
	"paypal":           "PYPL",
	"square":           "SQ",
	"american express": "AXP",

	// Retail and consumer
	"walmart":          "WMT",
	"target":           "TGT",
	"costco":           "COST",
	"home depot":       "HD",
	"nike":             "NKE",
	"starbucks":        "SBUX",
	"mcdonalds":        "MCD",
	"mcdonald's":       "MCD",
	"coca cola":        "KO",
	"coca-cola":        "KO",
	"pepsi":            "PEP",
	"procter & gamble": "PG",
	"disney":           "DIS",

	// Automotive
	"general motors": "GM",
	"ford":           "F",
	"gm":             "GM",

	// Pharma and healthcare
	"pfizer":            "PFE",
	"moderna":           "MRNA",
	"johnson & johnson": "JNJ",
	"abbvie":            "ABBV",
	"merck":             "MRK",
	"eli lilly":         "LLY",
	"bristol myers":     "BMY",
	"unitedhealth":      "UNH",

	// Energy
	"exxon":          "XOM",
	"chevron":        "CVX",
	"conocophillips": "COP",
	"schlumberger":   "SLB",

	// Crypto
	"bitcoin":       "BTC",
	"ethereum":      "ETH",
	"coinbase":      "COIN",
	"microstrategy": "MSTR",

	// Aerospace and defense
	"boeing":          "BA",
	"lockheed martin": "LMT",
	"raytheon":        "RTX",

	// Other
	"berkshire hathaway": "BRK.B",
	"at&t":               "T",
	"verizon":            "VZ",
	"comcast":            "CMCSA",
	"lowes":              "LOW",
	"lowe's":             "LOW",
}
