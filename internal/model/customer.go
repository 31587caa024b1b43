package model

import "time"

// Rank 會員等級，DiscountPercent 為 0~100
type Rank struct {
	Name            string `json:"name" db:"name"`
	DiscountPercent int    `json:"discountPercent" db:"discount_percent"`
}

// Coupon 優惠券，DiscountAmount 為固定折抵金額
type Coupon struct {
	CouponID       int        `json:"couponId" db:"id"`
	Code           string     `json:"code" db:"code"`
	DiscountAmount int64      `json:"discountAmount" db:"discount_amount"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty" db:"expires_at"`
}

// Customer 會員
type Customer struct {
	ID            int    `json:"id" db:"id"`
	Email         string `json:"email" db:"email"`
	LoyaltyPoints int64  `json:"loyaltyPoints" db:"loyalty_points"`
	Rank          Rank   `json:"rank" db:"-"`
}
