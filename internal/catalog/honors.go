package catalog

import "math"

// HonorsPerUSD is the fixed platform exchange rate: 450 Honors = 1 USD.
// The rate is a process-wide constant, there is no external rate fetch.
const HonorsPerUSD = 450

// UsdToHonors converts a USD amount to Honors, rounding to the nearest Honor.
func UsdToHonors(usd float64) int64 {
	return int64(math.Round(usd * HonorsPerUSD))
}

// HonorsToUsd converts Honors back to USD.
func HonorsToUsd(honors int64) float64 {
	return float64(honors) / HonorsPerUSD
}
