package scoring

// Built-in keyword tables for the Kazakhstan warehouse/logistics market.
// Substrings are matched against lower-cased text, so Russian stems are
// left unsuffixed on purpose ("закупк" covers "закупки", "закупках", ...).

// Segment and timing tags.
const (
	SegmentECom       = "E-COM"
	Segment3PL        = "3PL"
	SegmentFMCG       = "FMCG"
	SegmentDistrib    = "Distribution"
	SegmentRealEstate = "Warehouse Real Estate"
	SegmentAutoTech   = "Auto/Spec Tech"
	SegmentIndustrial = "Industrial"
	SegmentColdChain  = "Cold Chain"

	Timing0to3  = "0–3 мес"
	Timing0to6  = "0–6 мес"
	Timing3to12 = "3–12 мес"
	Timing6to24 = "6–24 мес"
)

// DefaultTables returns the production keyword tables.
func DefaultTables() Tables {
	return Tables{
		StrongSignals: []string{
			"warehouse",
			"distribution center",
			"distribution centre",
			"logistics hub",
			"fulfillment center",
			"fulfilment center",
			"supply chain",
			"warehouse jobs",
			"logistics jobs",
			"ваканс",
			"склад",
			"распределительный центр",
			"логистический центр",
			"логистический хаб",
			"фулфилмент",
			"центр обработки заказов",
			"тендер",
			"закупк",
			"инвестиц",
			"расширен",
			"открыт",
			"запуск",
			"строительств",
		},
		Regions: []string{
			"kazakhstan",
			"алматы",
			"almaty",
			"астана",
			"astana",
			"kazakh",
			"казахстан",
			"центральная азия",
			"central asia",
		},
		Segments: []SegmentRule{
			{SegmentECom, []string{"e-commerce", "ecommerce", "онлайн", "маркетплейс", "marketplace"}},
			{Segment3PL, []string{"3pl", "logistics provider", "логистический оператор", "фулфилмент"}},
			{SegmentFMCG, []string{"fmcg", "food", "retail", "ритейл", "продукт", "товары повседневного спроса"}},
			{SegmentDistrib, []string{
				"дистрибуц",
				"дистрибьют",
				"distribution",
				"дистрибуционный центр",
				// Stem, so declined forms ("распределительного центра")
				// classify too.
				"распределительн",
				"оптовый",
			}},
			{SegmentRealEstate, []string{
				"аренда склада",
				"складская недвижимость",
				"складской комплекс",
				"складской парк",
				"логистический парк",
				"индустриальный парк",
				"индустриальная зона",
				"склад класс a",
				"склад класс b",
				"склад класс c",
				"warehousing",
				"warehouse leasing",
			}},
			{SegmentAutoTech, []string{
				"автоспецтех",
				"спецтех",
				"складская техника",
				"погрузчик",
				"forklift",
				"reach truck",
				"material handling",
			}},
			{SegmentIndustrial, []string{"industrial", "manufacturing", "завод", "production", "промышлен"}},
			{SegmentColdChain, []string{"cold chain", "холодная цепь", "температурн", "холодильн"}},
		},
		Timings: []TimingRule{
			{Timing0to3, []string{"opens", "opening", "launch", "запуск", "открытие", "открыл"}},
			{Timing0to6, []string{"tender", "тендер", "rfp", "закуп"}},
			{Timing3to12, []string{"construction", "строитель", "planning", "проект"}},
			{Timing6to24, []string{"announce", "announced", "announces", "invest", "инвест"}},
		},
		DefaultTiming: Timing3to12,

		VacancyMarkers: []string{"vacanc", "ваканс", "jobs"},
		TenderMarkers:  []string{"tender", "тендер", "закуп"},
		InvestMarkers:  []string{"investment", "инвест"},

		JobStrong: []string{
			"warehouse",
			"inventory",
			"логист",
			"logistics",
			"supply chain",
			"склад",
			"fulfillment",
			"fulfilment",
			"wms",
			"distribution center",
			"распределительный центр",
			"дистрибуционный центр",
			"кросс-док",
			"cross-dock",
			"cold",
			"pick-pack",
			"пик-энд-пак",
		},
		JobBonusGroups: [][]string{
			{"wms"},
			{"cross-dock", "кросс-док"},
			{"fulfillment", "фулфилмент"},
			{"inventory", "запас"},
			{"cold", "холод"},
			{"pick-pack", "пик-энд-пак"},
		},
	}
}

// RSSAllowedSegments is the relevance allow-list for news and web-search
// items. Auto/Spec Tech and Other classify fine but never become leads
// from these sources; job-board leads bypass the filter entirely.
func RSSAllowedSegments() map[string]bool {
	return map[string]bool{
		SegmentECom:       true,
		Segment3PL:        true,
		SegmentFMCG:       true,
		SegmentDistrib:    true,
		SegmentRealEstate: true,
		SegmentIndustrial: true,
		SegmentColdChain:  true,
	}
}
