package core

// SegmentInput is one slice of a pie chart before angles are assigned.
type SegmentInput struct {
	ID     string
	Amount Money
}

// Segment is a pie slice in degrees, measured clockwise from 12 o'clock.
type Segment struct {
	ID         string  `json:"id"`
	StartAngle float64 `json:"startAngle"`
	EndAngle   float64 `json:"endAngle"`
	LargeArc   bool    `json:"largeArc"`
}

// DistributionEntry is the per-category share of one transaction type.
type DistributionEntry struct {
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Color        string  `json:"color"`
	Amount       Money   `json:"amount"`
	Percentage   float64 `json:"percentage"`
}

// SegmentAngles stacks the inputs around a full circle in order. Each slice
// sweeps amount/total*360 degrees; a zero total gives zero-width slices.
func SegmentAngles(inputs []SegmentInput) []Segment {
	var total int64
	for _, in := range inputs {
		total += in.Amount.Cents
	}

	out := make([]Segment, 0, len(inputs))
	var cum int64
	for _, in := range inputs {
		var start, end float64
		if total > 0 {
			start = float64(cum) / float64(total) * 360
			end = float64(cum+in.Amount.Cents) / float64(total) * 360
		}
		cum += in.Amount.Cents
		out = append(out, Segment{
			ID:         in.ID,
			StartAngle: start,
			EndAngle:   end,
			LargeArc:   end-start > 180,
		})
	}
	return out
}

// CategoryDistribution lists the categories of type tt with a nonzero amount,
// in category order, with their share of the tt total.
func CategoryDistribution(transactions []Transaction, categories []Category, tt TransactionType) []DistributionEntry {
	var total Money
	amounts := make(map[string]Money, len(categories))
	for _, t := range transactions {
		amounts[t.CategoryID] = amounts[t.CategoryID].Add(t.Amount)
		if t.Type == tt {
			total = total.Add(t.Amount)
		}
	}

	out := make([]DistributionEntry, 0)
	for _, c := range categories {
		if c.Type != tt {
			continue
		}
		amount := amounts[c.ID]
		if amount.IsZero() {
			continue
		}
		out = append(out, DistributionEntry{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			Color:        c.Color,
			Amount:       amount,
			Percentage:   Percentage(amount, total),
		})
	}
	return out
}

// DistributionSegments maps distribution entries to pie slices.
func DistributionSegments(entries []DistributionEntry) []Segment {
	inputs := make([]SegmentInput, len(entries))
	for i, e := range entries {
		inputs[i] = SegmentInput{ID: e.CategoryID, Amount: e.Amount}
	}
	return SegmentAngles(inputs)
}
