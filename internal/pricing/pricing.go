// Package pricing combines seats, combos, coupon, rank and loyalty points
// into the payable total.
package pricing

import "go-gin-cinema-booking/internal/display"

// Input 計價所需的各項金額，皆為最小貨幣單位
type Input struct {
	SeatSubtotal        int64
	ComboSubtotal       int64
	CouponDiscount      int64
	RankDiscountPercent int
	LoyaltyPointsUsed   int64
}

// Snapshot is derived on every change and never stored.
type Snapshot struct {
	SeatSubtotal       int64
	ComboSubtotal      int64
	SubTotal           int64
	CouponDiscount     int64
	TotalAfterCoupon   int64
	RankDiscountAmount int64
	LoyaltyPointsUsed  int64
	FinalTotal         int64
}

// Compute applies the discounts in a fixed order: coupon first, then the rank
// percentage on the coupon-reduced amount, then loyalty points. The result is
// not clamped; callers cap loyalty points with MaxRedeemablePoints.
func Compute(in Input) Snapshot {
	subTotal := in.SeatSubtotal + in.ComboSubtotal
	afterCoupon := subTotal - in.CouponDiscount
	rankAmount := rankDiscount(afterCoupon, in.RankDiscountPercent)

	return Snapshot{
		SeatSubtotal:       in.SeatSubtotal,
		ComboSubtotal:      in.ComboSubtotal,
		SubTotal:           subTotal,
		CouponDiscount:     in.CouponDiscount,
		TotalAfterCoupon:   afterCoupon,
		RankDiscountAmount: rankAmount,
		LoyaltyPointsUsed:  in.LoyaltyPointsUsed,
		FinalTotal:         afterCoupon - rankAmount - in.LoyaltyPointsUsed,
	}
}

// 整數運算，小數無條件捨去
func rankDiscount(amount int64, percent int) int64 {
	return amount * int64(percent) / 100
}

// MaxRedeemablePoints 可折抵點數上限 = 優惠券與等級折扣後的剩餘金額
func MaxRedeemablePoints(in Input) int64 {
	in.LoyaltyPointsUsed = 0
	limit := Compute(in).FinalTotal
	if limit < 0 {
		return 0
	}
	return limit
}

// CapPoints 將要求的點數限制在 0 與上限之間
func CapPoints(in Input, requested int64) int64 {
	if requested < 0 {
		return 0
	}
	if limit := MaxRedeemablePoints(in); requested > limit {
		return limit
	}
	return requested
}

// DiscountLine 折扣顯示列
type DiscountLine struct {
	Label  string
	Amount int64
	Text   string
}

// Discounts lists the non-zero discount components in application order,
// formatted with a leading minus sign.
func (s Snapshot) Discounts() []DiscountLine {
	candidates := []DiscountLine{
		{Label: "Coupon", Amount: s.CouponDiscount},
		{Label: "Rank", Amount: s.RankDiscountAmount},
		{Label: "Loyalty points", Amount: s.LoyaltyPointsUsed},
	}

	lines := make([]DiscountLine, 0, len(candidates))
	for _, l := range candidates {
		if l.Amount == 0 {
			continue
		}
		l.Text = display.FormatDiscount(l.Amount)
		lines = append(lines, l)
	}
	return lines
}
