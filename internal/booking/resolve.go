package booking

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/voyagent/voyagent/internal/models"
)

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// resolveItem locates the result a book request refers to. It tries, in
// order: an exact id match, a numeric-equivalence match ("1" vs "1.0"), the
// trailing digits of the id as a 1-based position, and finally a scrape of
// the last rendered fragment. Resolution never invents data: if every rung
// misses, the item is gone and the user has to search again.
func resolveItem(results []models.Result, renderedHTML, id string) (models.Result, string, error) {
	for _, r := range results {
		if r.ResultID() == id {
			return r, "exact", nil
		}
	}

	if want, err := strconv.ParseFloat(id, 64); err == nil {
		for _, r := range results {
			if got, err := strconv.ParseFloat(r.ResultID(), 64); err == nil && got == want {
				return r, "coerced", nil
			}
		}
	}

	if m := trailingDigits.FindStringSubmatch(id); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= len(results) {
			return results[n-1], "positional", nil
		}
	}

	if item, ok := scrapeCard(renderedHTML, id); ok {
		return item, "scraped", nil
	}

	return nil, "", models.ErrItemNotFound
}

// scrapedItem is a result reconstructed from rendered markup when the cache
// no longer holds the record. It carries just enough to price and book.
type scrapedItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

func (s scrapedItem) ResultID() string       { return s.ID }
func (s scrapedItem) PriceTag() models.Money { return models.Money(s.Price) }

// scrapeCard pulls the card for id out of the last rendered results
// fragment.
func scrapeCard(html, id string) (models.Result, bool) {
	if html == "" {
		return nil, false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, false
	}

	sel := doc.Find(fmt.Sprintf(`.result-card[data-id=%q]`, id)).First()
	if sel.Length() == 0 {
		return nil, false
	}

	return scrapedItem{
		ID:    id,
		Name:  strings.TrimSpace(sel.Find(".card-header h3").First().Text()),
		Price: strings.TrimSpace(sel.Find(".card-header .price").First().Text()),
	}, true
}
