package domain

// PackageFilter selects lesson packages from a snapshot. Nil/zero fields
// mean "no constraint".
type PackageFilter struct {
	Popular     *bool
	MaxPrice    *float64
	MinSessions *int // sessions=0 (unlimited) satisfies any minimum

	// Audience and Instruments match when the intersection with the
	// package's own sets is non-empty.
	Audience    []AudienceLevel
	Instruments []string
}

// FilterPackages returns the packages matching the filter. Packages that
// fail their own entity invariants are excluded entirely rather than
// surfaced as an error: partial availability beats total failure.
// The input slice is never mutated.
func FilterPackages(packages []LessonPackage, filter PackageFilter) []LessonPackage {
	result := make([]LessonPackage, 0, len(packages))

	for _, pkg := range packages {
		if !pkg.IsValid() {
			continue
		}
		if filter.Popular != nil && pkg.Popular != *filter.Popular {
			continue
		}
		if filter.MaxPrice != nil && pkg.Price > *filter.MaxPrice {
			continue
		}
		if filter.MinSessions != nil && pkg.Sessions != 0 && pkg.Sessions < *filter.MinSessions {
			continue
		}
		if len(filter.Audience) > 0 && !audienceIntersects(pkg.TargetAudience, filter.Audience) {
			continue
		}
		if len(filter.Instruments) > 0 && !stringIntersects(pkg.Instruments, filter.Instruments) {
			continue
		}
		result = append(result, pkg)
	}

	return result
}

// PackageStats summarizes a package list.
type PackageStats struct {
	Total        int     `json:"total"`
	PopularCount int     `json:"popularCount"`
	PriceMin     float64 `json:"priceMin"`
	PriceMax     float64 `json:"priceMax"`
	PriceMean    float64 `json:"priceMean"`
}

// SummarizePackages computes summary statistics over the given packages.
func SummarizePackages(packages []LessonPackage) PackageStats {
	stats := PackageStats{Total: len(packages)}
	if len(packages) == 0 {
		return stats
	}

	stats.PriceMin = packages[0].Price
	stats.PriceMax = packages[0].Price

	var sum float64
	for _, pkg := range packages {
		if pkg.Popular {
			stats.PopularCount++
		}
		if pkg.Price < stats.PriceMin {
			stats.PriceMin = pkg.Price
		}
		if pkg.Price > stats.PriceMax {
			stats.PriceMax = pkg.Price
		}
		sum += pkg.Price
	}
	stats.PriceMean = roundTo2Decimals(sum / float64(len(packages)))

	return stats
}

func audienceIntersects(a, b []AudienceLevel) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func stringIntersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// roundTo2Decimals rounds a float to 2 decimal places.
func roundTo2Decimals(value float64) float64 {
	return float64(int(value*100+0.5)) / 100
}
