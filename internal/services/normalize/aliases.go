package normalize

// aliasTable maps normalized keys (letters and CJK only, uppercased) to ISO codes.
// Built once; never written after init.
var aliasTable = buildAliasTable()

var isoCodes = []string{
	"AUD", "BGN", "BRL", "CAD", "CHF", "CNY", "CZK", "DKK", "EUR", "GBP", "HKD",
	"HUF", "IDR", "ILS", "INR", "ISK", "JPY", "KRW", "MXN", "MYR", "NOK", "NZD",
	"PHP", "PLN", "RON", "SEK", "SGD", "THB", "TRY", "USD", "ZAR",
}

var namedAliases = map[string]string{
	"美元": "USD", "美金": "USD", "USDOLLAR": "USD",
	"人民币": "CNY", "RMB": "CNY", "YUAN": "CNY",
	"欧元": "EUR", "EURO": "EUR",
	"英镑": "GBP", "POUND": "GBP",
	"日元": "JPY", "日币": "JPY", "日圆": "JPY", "YEN": "JPY",
	"港币": "HKD", "港元": "HKD", "香港元": "HKD",
	"澳元": "AUD", "澳币": "AUD", "澳大利亚元": "AUD", "澳洲元": "AUD",
	"加元": "CAD", "加币": "CAD", "加拿大元": "CAD",
	"瑞郎": "CHF", "瑞士法郎": "CHF",
	"新加坡元": "SGD", "新币": "SGD",
	"韩元": "KRW", "韩币": "KRW",
	"泰铢": "THB",
	"印度卢比": "INR",
	"新西兰元": "NZD", "新西兰币": "NZD", "纽西兰元": "NZD", "纽币": "NZD",
	"瑞典克朗": "SEK",
	"挪威克朗": "NOK",
	"丹麦克朗": "DKK",
	"捷克克朗": "CZK",
	"冰岛克朗": "ISK",
	"墨西哥比索": "MXN",
	"菲律宾比索": "PHP",
	"巴西雷亚尔": "BRL",
	"南非兰特": "ZAR",
	"土耳其里拉": "TRY",
	"波兰兹罗提": "PLN",
	"马来西亚林吉特": "MYR", "马币": "MYR",
	"印尼盾": "IDR",
	"以色列新谢克尔": "ILS",
	"匈牙利福林": "HUF",
	"罗马尼亚列伊": "RON",
	"保加利亚列弗": "BGN",
}

func buildAliasTable() map[string]string {
	t := make(map[string]string, len(isoCodes)+len(namedAliases))
	for _, c := range isoCodes {
		t[c] = c
	}
	for k, v := range namedAliases {
		t[k] = v
	}
	return t
}

// unitScales lists amount suffixes longest first so 百万 wins over 百.
type amountUnit struct {
	suffix string
	scale  float64
}

var unitScales = []amountUnit{
	{"百万", 1e6},
	{"千万", 1e7},
	{"亿", 1e8},
	{"万", 1e4},
	{"千", 1e3},
	{"百", 1e2},
	{"K", 1e3},
	{"W", 1e4},
	{"M", 1e6},
	{"B", 1e9},
}
