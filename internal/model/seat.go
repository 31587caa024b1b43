package model

import "strconv"

// SeatTypeName 座位種類
type SeatTypeName string

const (
	SeatTypeNormal    SeatTypeName = "Normal"
	SeatTypeVIP       SeatTypeName = "VIP"
	SeatTypeSweetBox  SeatTypeName = "Sweet Box"
	SeatTypeGoldClass SeatTypeName = "Gold Class"
)

// IsValid 驗證種類是否有效
func (n SeatTypeName) IsValid() bool {
	switch n {
	case SeatTypeNormal, SeatTypeVIP, SeatTypeSweetBox, SeatTypeGoldClass:
		return true
	}
	return false
}

// SeatType 座位種類與票價（最小貨幣單位）
type SeatType struct {
	Name  SeatTypeName `json:"name" db:"name"`
	Price int64        `json:"price" db:"price"`
}

func (t *SeatType) IsSweetBox() bool {
	return t != nil && t.Name == SeatTypeSweetBox
}

// SeatStatus 座位狀態
type SeatStatus string

const (
	SeatStatusEmpty     SeatStatus = "empty"
	SeatStatusAvailable SeatStatus = "available"
	SeatStatusSelected  SeatStatus = "selected"
	SeatStatusTaken     SeatStatus = "taken"
)

func (s SeatStatus) IsValid() bool {
	switch s {
	case SeatStatusEmpty, SeatStatusAvailable, SeatStatusSelected, SeatStatusTaken:
		return true
	}
	return false
}

// SeatColumn 伺服器回傳的單一座位；SeatType 為 nil 表示該位置沒有實體座位
type SeatColumn struct {
	Column   int        `json:"column"`
	SeatID   int        `json:"seatId"`
	SeatType *SeatType  `json:"seatType"`
	Status   SeatStatus `json:"status"`
}

// SeatRow 伺服器回傳的一排座位（稀疏，只含存在的座位）
type SeatRow struct {
	Row         string       `json:"row"`
	SeatColumns []SeatColumn `json:"seatColumns"`
}

// Seat 影廳中的實體座位；Taken 表示該場次已售出
type Seat struct {
	ID       int      `json:"seatId" db:"id"`
	RoomName string   `json:"roomName" db:"room_name"`
	Row      string   `json:"row" db:"row_label"`
	Column   int      `json:"column" db:"column_no"`
	SeatType SeatType `json:"seatType" db:"-"`
	Taken    bool     `json:"taken" db:"-"`
}

// Label 例如 "A1"
func (s Seat) Label() string {
	return s.Row + strconv.Itoa(s.Column)
}
