package newsfeed

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/atlasrisk/varscope-backend/internal/domain"
)

// Two headlines are published per valuation date, six hours apart
const (
	itemsPerDate    = 2
	publishInterval = 6 * time.Hour
)

type template struct {
	headline string
	source   string
	summary  string
	angle    string
}

// Fixed pool cycled across valuation dates. Angles are consumed by the
// commentary composer and never serialized.
var templatePool = []template{
	{
		headline: "日銀、長期金利の許容レンジ拡大を示唆",
		source:   "日本経済新聞",
		summary:  "長期ゾーンのJGB利回りがじり高となり、国内機関投資家のポジション調整が波及。",
		angle:    "国内金利のレンジ見直し観測が金利系ポジションの入れ替えを促した。",
	},
	{
		headline: "米CPI鈍化で長期債が続伸、ヘッジ需要も増加",
		source:   "Bloomberg",
		summary:  "コアCPIが予想を下回り、デュレーション・ヘッジへの需要が再び活発化。",
		angle:    "デュレーション・ヘッジ需要の再燃が金利系VaRの振れを増幅した。",
	},
	{
		headline: "モーゲージスプレッドが落ち着きヘッジ需要後退",
		source:   "Reuters",
		summary:  "スプレッドがタイト化し、保険勢のポジションが軽くなった。",
		angle:    "モーゲージ系のヘッジ解消がウィンドウ更新要因を上回った。",
	},
	{
		headline: "テック決算シーズン入りでボラティリティ上昇",
		source:   "Bloomberg",
		summary:  "主要テック企業の決算を前に、株式オプションのインプライドボラが切り上がった。",
		angle:    "株式ボラの切り上がりが株式系VaRのランキングを押し上げた。",
	},
	{
		headline: "HY社債スプレッド拡大、資金流出が継続",
		source:   "Reuters",
		summary:  "ハイイールドファンドからの資金流出が続き、スプレッドはワイド化。",
		angle:    "クレジットスプレッドのワイド化がクレジット系の寄与を拡大した。",
	},
	{
		headline: "金価格が高値圏で推移、実質金利低下が支え",
		source:   "日本経済新聞",
		summary:  "実質金利の低下観測を受けて金は高値圏を維持、商品系ポジションは小動き。",
		angle:    "商品系は小幅な寄与にとどまり、全体の変動は他資産主導となった。",
	},
}

// Catalog cycles the template pool into date-stamped news items
type Catalog struct{}

// NewCatalog creates a news catalog
func NewCatalog() *Catalog {
	return &Catalog{}
}

// ForDates emits itemsPerDate news items for every valuation date, cycling
// through the pool so each date always has at least one narrative angle.
// IDs derive from the publish slot, keeping reseeds reproducible.
func (c *Catalog) ForDates(dates []time.Time) []domain.NewsItem {
	items := make([]domain.NewsItem, 0, len(dates)*itemsPerDate)

	for dateIdx, date := range dates {
		day := domain.DateOnly(date)
		for slot := 0; slot < itemsPerDate; slot++ {
			tpl := templatePool[(dateIdx*itemsPerDate+slot)%len(templatePool)]
			publishedAt := day.Add(time.Duration(slot) * publishInterval)

			items = append(items, domain.NewsItem{
				ID:          newsID(day, slot),
				Headline:    fmt.Sprintf("%s（%d/%d）", tpl.headline, day.Month(), day.Day()),
				PublishedAt: publishedAt,
				Source:      tpl.source,
				Summary:     fmt.Sprintf("%s（%s時点）", tpl.summary, day.Format("2006-01-02")),
				Angle:       tpl.angle,
			})
		}
	}

	return items
}

// ForDate filters items published on the given valuation date, preserving order
func ForDate(items []domain.NewsItem, date time.Time) []domain.NewsItem {
	day := domain.DateOnly(date)
	var matched []domain.NewsItem
	for _, item := range items {
		if domain.DateOnly(item.PublishedAt).Equal(day) {
			matched = append(matched, item)
		}
	}
	return matched
}

func newsID(day time.Time, slot int) uuid.UUID {
	name := fmt.Sprintf("varscope/news/%s/%d", day.Format("2006-01-02"), slot)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name))
}
