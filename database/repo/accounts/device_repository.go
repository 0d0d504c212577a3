package accounts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/artfolio/gallery-backend/database/models"
	"gorm.io/gorm"
)

// DeviceRepository 设备仓库 - 管理登录会话与刷新令牌
// 刷新令牌只存 SHA-256 哈希，明文不落库
type DeviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository 创建新的设备仓库
func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CreateLoginDevice 创建设备登录记录
func (r *DeviceRepository) CreateLoginDevice(userID uint, deviceID, refreshToken string, expiry time.Time) error {
	device := &models.Device{
		UserID:       userID,
		RefreshToken: hashToken(refreshToken),
		DeviceID:     deviceID,
		Expiry:       expiry,
	}
	return r.db.Create(device).Error
}

// GetDeviceByRefreshTokenAndDeviceID 通过刷新令牌和设备ID获取未过期的设备
// 未找到时返回 (nil, nil)
func (r *DeviceRepository) GetDeviceByRefreshTokenAndDeviceID(refreshToken, deviceID string) (*models.Device, error) {
	var device models.Device
	err := r.db.
		Where("refresh_token = ? AND device_id = ? AND expiry > ?", hashToken(refreshToken), deviceID, time.Now()).
		First(&device).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &device, nil
}

// RotateRefreshToken 轮换刷新令牌：删除设备旧记录并写入新令牌
func (r *DeviceRepository) RotateRefreshToken(userID uint, deviceID, newRefreshToken string, newExpiry time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("device_id = ?", deviceID).Delete(&models.Device{}).Error; err != nil {
			return err
		}

		device := &models.Device{
			UserID:       userID,
			RefreshToken: hashToken(newRefreshToken),
			DeviceID:     deviceID,
			Expiry:       newExpiry,
		}
		return tx.Create(device).Error
	})
}

// DeleteDeviceByDeviceID 删除设备（登出）
func (r *DeviceRepository) DeleteDeviceByDeviceID(deviceID string) error {
	return r.db.Where("device_id = ?", deviceID).Delete(&models.Device{}).Error
}

// DeleteDevicesByUser 删除用户的所有设备（改密后强制下线）
func (r *DeviceRepository) DeleteDevicesByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Device{}).Error
}

// DeleteExpiredDevices 清理过期的设备记录
func (r *DeviceRepository) DeleteExpiredDevices() (int64, error) {
	result := r.db.Where("expiry <= ?", time.Now()).Delete(&models.Device{})
	return result.RowsAffected, result.Error
}

// WithContext 返回带上下文的仓库
func (r *DeviceRepository) WithContext(ctx context.Context) *DeviceRepository {
	return &DeviceRepository{db: r.db.WithContext(ctx)}
}
