package model

// ComboItem 套餐（爆米花、飲料）
type ComboItem struct {
	ComboID  int    `json:"comboId" db:"id"`
	Name     string `json:"name" db:"name"`
	Price    int64  `json:"price" db:"price"`
	ImageURL string `json:"imageURL" db:"image_url"`
	Stock    int    `json:"-" db:"stock"`
}
