package rss

import "net/url"

// Signal queries turned into Google News RSS feeds. Two locales: the
// Russian set carries most of the coverage, the English set catches
// international announcements about the same market.

var SignalQueriesRU = []string{
	"аренда склада Казахстан",
	"склад в Алматы",
	"склад в Астане",
	"складская недвижимость Казахстан",
	"складской комплекс Казахстан",
	"строительство склада Казахстан",
	"ввод в эксплуатацию склад Казахстан",
	"склад класс A Казахстан",
	"склад класс B Казахстан",
	"склад класс C Казахстан",
	"складской парк Казахстан",
	"складской терминал Казахстан",
	"распределительный центр Казахстан",
	"дистрибуционный центр Казахстан",
	"дистрибуция Казахстан",
	"логистический парк Казахстан",
	"логистический центр Казахстан",
	"логистический хаб Казахстан",
	"индустриальная зона Казахстан",
	"индустриальный парк Казахстан",
	"строительство РЦ Казахстан",
	"фулфилмент Казахстан",
	"центр обработки заказов Казахстан",
	"3PL оператор Казахстан",
	"dark store Казахстан",
	"cold chain Казахстан",
	"холодная цепь Казахстан",
	"кросс-докинг Казахстан",
	"WMS внедрение Казахстан",
	"дистрибьютор FMCG Казахстан",
	"оптовый дистрибьютор Казахстан",
	"e-commerce склад Казахстан",
	"складская техника Казахстан",
	"погрузчики склад Казахстан",
}

var SignalQueriesEN = []string{
	"warehouse leasing Kazakhstan",
	"warehouse Almaty",
	"warehouse Astana",
	"distribution center Kazakhstan",
	"distribution centre Kazakhstan",
	"logistics hub Kazakhstan",
	"logistics park Kazakhstan",
	"industrial park logistics Kazakhstan",
	"industrial zone Kazakhstan",
	"supply chain Kazakhstan",
	"supply chain expansion Kazakhstan",
	"warehouse construction Kazakhstan",
	"warehouse class A Kazakhstan",
	"warehouse class B Kazakhstan",
	"warehouse class C Kazakhstan",
	"fulfillment center Kazakhstan",
	"fulfilment center Kazakhstan",
	"3PL provider Kazakhstan",
	"dark store Kazakhstan",
	"cold chain warehouse Kazakhstan",
	"cross-dock Kazakhstan",
	"FMCG distributor Kazakhstan",
	"e-commerce warehouse Kazakhstan",
	"material handling equipment Kazakhstan",
}

// OptionalFeeds holds extra public RSS endpoints appended to the
// generated list. Empty unless a deployment adds its own.
var OptionalFeeds []string

// BuildGoogleNewsURL builds a Google News RSS search endpoint for one
// query and locale.
func BuildGoogleNewsURL(query, hl, gl, ceid string) string {
	return "https://news.google.com/rss/search?q=" + url.QueryEscape(query) +
		"&hl=" + hl + "&gl=" + gl + "&ceid=" + ceid
}

// AllFeedURLs returns the full fixed feed list for one scan: every RU
// query, every EN query, then the optional extras.
func AllFeedURLs() []string {
	feeds := make([]string, 0, len(SignalQueriesRU)+len(SignalQueriesEN)+len(OptionalFeeds))
	for _, q := range SignalQueriesRU {
		feeds = append(feeds, BuildGoogleNewsURL(q, "ru", "RU", "RU:ru"))
	}
	for _, q := range SignalQueriesEN {
		feeds = append(feeds, BuildGoogleNewsURL(q, "en", "RU", "RU:en"))
	}
	return append(feeds, OptionalFeeds...)
}
