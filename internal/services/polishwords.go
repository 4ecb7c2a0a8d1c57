package services

import "strings"

var (
	plOnes = []string{"", "jeden", "dwa", "trzy", "cztery", "pięć", "sześć", "siedem", "osiem", "dziewięć"}
	plTeens = []string{"dziesięć", "jedenaście", "dwanaście", "trzynaście", "czternaście",
		"piętnaście", "szesnaście", "siedemnaście", "osiemnaście", "dziewiętnaście"}
	plTens = []string{"", "", "dwadzieścia", "trzydzieści", "czterdzieści", "pięćdziesiąt",
		"sześćdziesiąt", "siedemdziesiąt", "osiemdziesiąt", "dziewięćdziesiąt"}
	plHundreds = []string{"", "sto", "dwieście", "trzysta", "czterysta", "pięćset",
		"sześćset", "siedemset", "osiemset", "dziewięćset"}
)

// polishWords spells out a non-negative integer in Polish, for the
// słownie clauses next to contract amounts. Covers up to the hundreds
// of millions range that event budgets realistically reach.
func polishWords(n int64) string {
	if n == 0 {
		return "zero"
	}
	if n < 0 {
		return "minus " + polishWords(-n)
	}

	var parts []string
	if m := n / 1_000_000; m > 0 {
		parts = append(parts, groupWords(m, "milion", "miliony", "milionów"))
		n %= 1_000_000
	}
	if t := n / 1_000; t > 0 {
		parts = append(parts, groupWords(t, "tysiąc", "tysiące", "tysięcy"))
		n %= 1_000
	}
	if n > 0 {
		parts = append(parts, underThousand(n))
	}
	return strings.Join(parts, " ")
}

// groupWords picks the Polish plural form: 1 → singular, 2-4 (but not
// 12-14) → paucal, everything else → genitive plural. A bare 1 drops
// the "jeden" ("tysiąc", not "jeden tysiąc").
func groupWords(count int64, singular, paucal, plural string) string {
	form := plural
	lastTwo := count % 100
	last := count % 10
	switch {
	case count == 1:
		return singular
	case last >= 2 && last <= 4 && (lastTwo < 12 || lastTwo > 14):
		form = paucal
	}
	return underThousand(count) + " " + form
}

func underThousand(n int64) string {
	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, plHundreds[h])
	}
	rest := n % 100
	switch {
	case rest >= 10 && rest <= 19:
		parts = append(parts, plTeens[rest-10])
	default:
		if t := rest / 10; t > 0 {
			parts = append(parts, plTens[t])
		}
		if o := rest % 10; o > 0 {
			parts = append(parts, plOnes[o])
		}
	}
	return strings.Join(parts, " ")
}
