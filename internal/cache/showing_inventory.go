package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go-gin-cinema-booking/internal/model"
	apperrors "go-gin-cinema-booking/pkg/app_errors"

	"github.com/redis/go-redis/v9"
)

const (
	seatFree  = "0"
	seatTaken = "1"
)

// ReserveResult 預留失敗時列出不可用的座位與套餐
type ReserveResult struct {
	UnavailableSeatIDs  []int
	UnavailableComboIDs []int
}

func (r ReserveResult) OK() bool {
	return len(r.UnavailableSeatIDs) == 0 && len(r.UnavailableComboIDs) == 0
}

type ShowingInventoryManager interface {
	// 預熱：將場次座位狀態載入 Redis，taken 為已售出座位
	WarmUpShowing(ctx context.Context, showingID int, seatIDs []int, taken map[int]bool) error
	// 預熱：套餐庫存
	WarmUpCombos(ctx context.Context, stock map[int]int) error
	// 場次是否已開賣
	IsOpen(ctx context.Context, showingID int) (bool, error)
	// 已售出座位
	TakenSeats(ctx context.Context, showingID int) (map[int]bool, error)
	// 套餐剩餘庫存
	ComboStock(ctx context.Context, comboID int) (int, error)
	// 預留：全部可用才扣減，否則回傳不可用清單 (使用Lua腳本確保原子性)
	Reserve(ctx context.Context, showingID int, seatIDs []int, combos []model.BookingCombo) (ReserveResult, error)
	// 回滾：釋放座位並歸還套餐庫存 (使用Lua腳本確保原子性)
	Release(ctx context.Context, showingID int, seatIDs []int, combos []model.BookingCombo) error
}

type ShowingInventoryManagerImpl struct {
	client *redis.Client
}

func NewShowingInventoryManager(client *redis.Client) ShowingInventoryManager {
	return &ShowingInventoryManagerImpl{
		client: client,
	}
}

// 座位狀態 key
func (m *ShowingInventoryManagerImpl) getSeatsKey(showingID int) string {
	return fmt.Sprintf("showing:%d:seats", showingID)
}

// 套餐庫存 key，所有場次共用
func (m *ShowingInventoryManagerImpl) getCombosKey() string {
	return "combo:stock"
}

func (m *ShowingInventoryManagerImpl) WarmUpShowing(ctx context.Context, showingID int, seatIDs []int, taken map[int]bool) error {
	if len(seatIDs) == 0 {
		return apperrors.ErrSeatNotFound
	}

	values := make(map[string]interface{}, len(seatIDs))
	for _, id := range seatIDs {
		status := seatFree
		if taken[id] {
			status = seatTaken
		}
		values[strconv.Itoa(id)] = status
	}

	key := m.getSeatsKey(showingID)
	pipe := m.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, values)
	_, err := pipe.Exec(ctx)
	return err
}

func (m *ShowingInventoryManagerImpl) WarmUpCombos(ctx context.Context, stock map[int]int) error {
	if len(stock) == 0 {
		return nil
	}
	values := make(map[string]interface{}, len(stock))
	for id, qty := range stock {
		values[strconv.Itoa(id)] = qty
	}
	return m.client.HSet(ctx, m.getCombosKey(), values).Err()
}

func (m *ShowingInventoryManagerImpl) IsOpen(ctx context.Context, showingID int) (bool, error) {
	n, err := m.client.Exists(ctx, m.getSeatsKey(showingID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (m *ShowingInventoryManagerImpl) TakenSeats(ctx context.Context, showingID int) (map[int]bool, error) {
	result, err := m.client.HGetAll(ctx, m.getSeatsKey(showingID)).Result()
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, apperrors.ErrShowingNotOpen
	}

	taken := make(map[int]bool)
	for field, status := range result {
		id, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid seat id %q: %v", field, err)
		}
		if status == seatTaken {
			taken[id] = true
		}
	}
	return taken, nil
}

func (m *ShowingInventoryManagerImpl) ComboStock(ctx context.Context, comboID int) (int, error) {
	val, err := m.client.HGet(ctx, m.getCombosKey(), strconv.Itoa(comboID)).Int()
	if err == redis.Nil {
		return -1, apperrors.ErrComboNotFound
	}
	return val, err
}

// ARGV: 座位數 n, n 個座位 ID, 之後為 (套餐ID, 數量) 成對
func reserveArgs(seatIDs []int, combos []model.BookingCombo) []interface{} {
	args := make([]interface{}, 0, 1+len(seatIDs)+2*len(combos))
	args = append(args, len(seatIDs))
	for _, id := range seatIDs {
		args = append(args, id)
	}
	for _, c := range combos {
		args = append(args, c.ComboID, c.Quantity)
	}
	return args
}

/*
*

	預留座位與套餐 (使用Lua腳本確保原子性)
	1. 檢查場次是否已預熱
	2. 檢查每個座位是否仍可售
	3. 檢查每個套餐庫存
	4. 全部可用才標記座位並扣減庫存
*/
func (m *ShowingInventoryManagerImpl) Reserve(ctx context.Context, showingID int, seatIDs []int, combos []model.BookingCombo) (ReserveResult, error) {
	script := `
		local seats_key = KEYS[1]
		local combos_key = KEYS[2]

		-- 1. 場次未預熱
		if redis.call('EXISTS', seats_key) == 0 then
			return {-3, {}, {}}
		end

		local n = tonumber(ARGV[1])

		-- 2. 檢查座位
		local bad_seats = {}
		for i = 2, n + 1 do
			local status = redis.call('HGET', seats_key, ARGV[i])
			if status ~= '0' then
				table.insert(bad_seats, tonumber(ARGV[i]))
			end
		end

		-- 3. 檢查套餐庫存
		local bad_combos = {}
		for i = n + 2, #ARGV, 2 do
			local stock = redis.call('HGET', combos_key, ARGV[i])
			if not stock or tonumber(stock) < tonumber(ARGV[i + 1]) then
				table.insert(bad_combos, tonumber(ARGV[i]))
			end
		end

		if #bad_seats > 0 or #bad_combos > 0 then
			return {0, bad_seats, bad_combos}
		end

		-- 4. 標記與扣減
		for i = 2, n + 1 do
			redis.call('HSET', seats_key, ARGV[i], '1')
		end
		for i = n + 2, #ARGV, 2 do
			redis.call('HINCRBY', combos_key, ARGV[i], -tonumber(ARGV[i + 1]))
		end

		return {1, {}, {}}
	`

	keys := []string{m.getSeatsKey(showingID), m.getCombosKey()}
	result, err := m.client.Eval(ctx, script, keys, reserveArgs(seatIDs, combos)...).Result()
	if err != nil {
		return ReserveResult{}, err
	}

	resSlice, ok := result.([]interface{})
	if !ok || len(resSlice) != 3 {
		return ReserveResult{}, errors.New("unexpected result")
	}
	code, _ := resSlice[0].(int64)

	switch code {
	case 1:
		return ReserveResult{}, nil
	case 0:
		return ReserveResult{
			UnavailableSeatIDs:  toInts(resSlice[1]),
			UnavailableComboIDs: toInts(resSlice[2]),
		}, nil
	case -3:
		return ReserveResult{}, apperrors.ErrShowingNotOpen
	default:
		return ReserveResult{}, errors.New("unexpected result")
	}
}

func (m *ShowingInventoryManagerImpl) Release(ctx context.Context, showingID int, seatIDs []int, combos []model.BookingCombo) error {
	script := `
		local seats_key = KEYS[1]
		local combos_key = KEYS[2]
		local n = tonumber(ARGV[1])

		-- 釋放座位
		for i = 2, n + 1 do
			if redis.call('HEXISTS', seats_key, ARGV[i]) == 1 then
				redis.call('HSET', seats_key, ARGV[i], '0')
			end
		end
		-- 歸還套餐
		for i = n + 2, #ARGV, 2 do
			redis.call('HINCRBY', combos_key, ARGV[i], tonumber(ARGV[i + 1]))
		end

		return "OK"
	`

	keys := []string{m.getSeatsKey(showingID), m.getCombosKey()}
	_, err := m.client.Eval(ctx, script, keys, reserveArgs(seatIDs, combos)...).Result()
	return err
}

func toInts(v interface{}) []int {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		if n, ok := item.(int64); ok {
			out = append(out, int(n))
		}
	}
	return out
}
