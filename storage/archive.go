package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mo-sami19/zynk/chat"
	"github.com/mo-sami19/zynk/content"
	"github.com/mo-sami19/zynk/models"
)

// Archive writes completed conversations and contact submissions to the
// archive database. It satisfies chat.Archiver.
type Archive struct {
	db     *gorm.DB
	client *content.Client
}

// NewArchive builds an Archive over db. The client is used by the contact
// flusher to retry pending deliveries.
func NewArchive(db *gorm.DB, client *content.Client) *Archive {
	return &Archive{db: db, client: client}
}

// ArchiveSession upserts one conversation keyed by the gateway session id.
// Transcript rows are rewritten so repeated archival (completion, then
// rating) stays idempotent.
func (a *Archive) ArchiveSession(ctx context.Context, gatewayID string, rec chat.Record) error {
	record := models.ChatSessionRecord{
		GatewayID:  gatewayID,
		UpstreamID: rec.UpstreamID,
		Language:   rec.Language,
		LeadScore:  rec.LeadScore,
		IsComplete: rec.Complete,
	}
	err := a.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "gateway_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"upstream_id", "lead_score", "is_complete", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("archive session: %w", err)
	}

	// Re-read the id in case the upsert hit an existing row.
	var stored models.ChatSessionRecord
	if err := a.db.WithContext(ctx).Where("gateway_id = ?", gatewayID).First(&stored).Error; err != nil {
		return fmt.Errorf("archive session lookup: %w", err)
	}

	if err := a.db.WithContext(ctx).
		Where("session_record_id = ?", stored.ID).
		Delete(&models.ChatMessageRecord{}).Error; err != nil {
		return fmt.Errorf("archive transcript reset: %w", err)
	}
	for _, msg := range rec.Transcript {
		row := models.ChatMessageRecord{
			SessionRecordID: stored.ID,
			Role:            msg.Role,
			Content:         msg.Content,
			SentAt:          msg.Timestamp,
		}
		if err := a.db.WithContext(ctx).Create(&row).Error; err != nil {
			return fmt.Errorf("archive transcript row: %w", err)
		}
	}
	return nil
}

// RecordRating stores the rating on an archived session.
func (a *Archive) RecordRating(ctx context.Context, gatewayID string, rating int, feedback string) error {
	now := time.Now()
	return a.db.WithContext(ctx).
		Model(&models.ChatSessionRecord{}).
		Where("gateway_id = ?", gatewayID).
		Updates(map[string]interface{}{"rating": rating, "feedback": feedback, "rated_at": now}).Error
}

// ArchiveContact stores one contact submission with its delivery status.
func (a *Archive) ArchiveContact(ctx context.Context, msg models.ContactMessage, status string) error {
	record := models.ContactRecord{
		Name:    msg.Name,
		Email:   msg.Email,
		Phone:   msg.Phone,
		Subject: msg.Subject,
		Message: msg.Message,
		Service: msg.Service,
		Status:  status,
	}
	if status == models.ContactStatusSent {
		now := time.Now()
		record.SentAt = &now
	}
	return a.db.WithContext(ctx).Create(&record).Error
}

// FlushPendingContacts retries queued contact submissions. Records that
// deliver are marked sent; records that keep failing past maxAttempts are
// marked failed so they stop cycling.
func (a *Archive) FlushPendingContacts(ctx context.Context, maxAttempts int) {
	var pending []models.ContactRecord
	if err := a.db.WithContext(ctx).
		Where("status = ?", models.ContactStatusPending).
		Limit(50).
		Find(&pending).Error; err != nil {
		log.Printf("[contact] flush query failed: %v", err)
		return
	}

	for i := range pending {
		rec := &pending[i]
		msg := models.ContactMessage{
			Name: rec.Name, Email: rec.Email, Phone: rec.Phone,
			Subject: rec.Subject, Message: rec.Message, Service: rec.Service,
		}
		_, err := a.client.SubmitContact(ctx, msg)
		updates := map[string]interface{}{"attempts": rec.Attempts + 1}
		if err == nil {
			now := time.Now()
			updates["status"] = models.ContactStatusSent
			updates["sent_at"] = now
		} else if rec.Attempts+1 >= maxAttempts {
			updates["status"] = models.ContactStatusFailed
			log.Printf("[contact] giving up on record %d after %d attempts: %v", rec.ID, rec.Attempts+1, err)
		} else {
			log.Printf("[contact] retry failed for record %d: %v", rec.ID, err)
		}
		if err := a.db.WithContext(ctx).Model(rec).Updates(updates).Error; err != nil {
			log.Printf("[contact] status update failed for record %d: %v", rec.ID, err)
		}
	}
}

// StartContactFlusher launches the background retry loop; it stops when
// done closes.
func (a *Archive) StartContactFlusher(done <-chan struct{}, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				a.FlushPendingContacts(ctx, 5)
				cancel()
			}
		}
	}()
}
