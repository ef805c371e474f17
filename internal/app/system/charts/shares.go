package charts

import (
	"math"
	"sort"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/domain/models"
)

// Share is one group's part of the total sample size.
type Share struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Proportion float64 `json:"proportion"`
}

// SampleSizeShares returns each organisation's sample size and its share of
// the total, sorted by organisation name.
func SampleSizeShares(s models.Snapshot) []Share {
	shares := make([]Share, 0, len(s))
	for _, org := range s.Organisations() {
		shares = append(shares, Share{Label: org, Count: s[org].SampleSize})
	}
	return withProportions(shares)
}

// CountryShares sums sample sizes per country, sorted by country.
func CountryShares(s models.Snapshot) []Share {
	byCountry := map[string]int{}
	for _, rec := range s {
		byCountry[rec.Country] += rec.SampleSize
	}
	shares := make([]Share, 0, len(byCountry))
	for c, n := range byCountry {
		shares = append(shares, Share{Label: c, Count: n})
	}
	sort.Slice(shares, func(i, j int) bool { return shares[i].Label < shares[j].Label })
	return withProportions(shares)
}

// withProportions fills in proportions rounded to two decimals. A zero
// total leaves every proportion at 0.
func withProportions(shares []Share) []Share {
	total := 0
	for _, s := range shares {
		total += s.Count
	}
	if total == 0 {
		return shares
	}
	for i := range shares {
		shares[i].Proportion = round2(float64(shares[i].Count) / float64(total))
	}
	return shares
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
