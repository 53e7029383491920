// Package tariff implements the shipping tariff grid and the calibrated
// pricing model. A tariff tier is selected by cargo weight bracket; the final
// price is derived from the tier's base fee and per-kilometer rate, padded by
// a fixed margin and rounded up to the nearest 500 RUB.
package tariff
