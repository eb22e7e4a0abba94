// Package headhunter adapts the hh.ru public vacancy API as a lead
// source: region-scoped, time-windowed vacancy search with per-vacancy
// detail enrichment.
package headhunter

import (
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	apiURL           = "https://api.hh.ru"
	defaultUserAgent = "elp-market-radar/1.0 (support@elp-logistics.kz)"

	// Max items per search page accepted by the API for anonymous use.
	perPage = 50
	// Only vacancies published within this trailing window are searched.
	searchWindow = 30 * 24 * time.Hour
)

// Queries is the fixed query list for the job-board scan, bilingual like
// the feed set: management and operations roles that signal warehouse
// activity, not the floor jobs themselves.
var Queries = []string{
	"руководитель склада",
	"начальник склада",
	"менеджер склада",
	"директор по логистике",
	"руководитель РЦ",
	"распределительный центр",
	"дистрибуционный центр",
	"складская логистика",
	"транспортная логистика",
	"управление запасами",
	"планирование поставок",
	"специалист по цепям поставок",
	"supply chain",
	"WMS",
	"фулфилмент",
	"кросс-докинг",
	"комплектация заказов",
	"начальник смены склад",
	"операционный менеджер склад",
	"руководитель 3PL",
	"warehouse manager",
	"head of logistics",
	"supply chain manager",
	"distribution center",
	"fulfillment manager",
	"inventory manager",
	"cross-dock",
	"operations manager logistics",
	"transport manager",
}

// Client talks to api.hh.ru anonymously. Area resolution is cached for
// the process lifetime; all requests go through a politeness limiter.
type Client struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string

	limiter *rate.Limiter

	areaOnce sync.Once
	areaIDs  AreaIDs
	areaErr  error
}

func New(logger *zap.Logger) *Client {
	return &Client{
		logger: logger,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		UserAgent: defaultUserAgent,
		limiter:   rate.NewLimiter(rate.Every(250*time.Millisecond), 1),
	}
}
