package handlers

import (
	"errors"

	"github.com/etuition/tutoria/database"
	"github.com/etuition/tutoria/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BidRequest struct {
	Amount  uint   `json:"amount"`
	Message string `json:"message"`
}

// CreateBid places the caller's bid on an open job post. One bid per
// (tutor, job) pair; the unique index arbitrates racing duplicates.
func CreateBid(c *fiber.Ctx) error {
	user := currentUser(c)
	tutor := teacherProfileFor(user.ID)
	if tutor == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Teacher profile does not exist. Please create a teacher profile first."})
	}

	var post models.JobPost
	if err := database.DB.First(&post, "id = ?", c.Params("jobId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Job post not found."})
	}
	if post.Status != models.JobStatusOpen {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "This job post is closed."})
	}
	if post.PostedByID == user.ID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "You cannot bid on your own job post."})
	}

	var req BidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	var existing int64
	database.DB.Model(&models.Bid{}).
		Where("tutor_id = ? AND job_post_id = ?", tutor.ID, post.ID).
		Count(&existing)
	if existing > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "You have already placed a bid on this job post."})
	}

	bid := models.Bid{
		TutorID:   tutor.ID,
		JobPostID: post.ID,
		Amount:    req.Amount,
		Message:   req.Message,
		Status:    models.BidStatusPending,
	}
	if err := database.DB.Create(&bid).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "You have already placed a bid on this job post."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to place bid"})
	}

	return c.Status(fiber.StatusCreated).JSON(bid)
}

// ListJobBids shows the bids on one of the caller's own job posts.
func ListJobBids(c *fiber.Ctx) error {
	user := currentUser(c)

	var post models.JobPost
	if err := database.DB.First(&post, "id = ? AND posted_by_id = ?", c.Params("jobId"), user.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Job post not found."})
	}

	var bids []models.Bid
	database.DB.Preload("Tutor").Preload("Tutor.User").
		Where("job_post_id = ?", post.ID).
		Order("created_at asc").
		Find(&bids)

	return c.JSON(bids)
}

func ListMyBids(c *fiber.Ctx) error {
	user := currentUser(c)
	tutor := teacherProfileFor(user.ID)
	if tutor == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Teacher profile does not exist. Please create a teacher profile first."})
	}

	var bids []models.Bid
	database.DB.Preload("JobPost").
		Where("tutor_id = ?", tutor.ID).
		Order("created_at desc").
		Find(&bids)

	return c.JSON(bids)
}

func decideBid(c *fiber.Ctx, decision string) error {
	user := currentUser(c)

	var bid models.Bid
	if err := database.DB.Preload("JobPost").First(&bid, "id = ? AND job_post_id = ?", c.Params("bidId"), c.Params("jobId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Bid not found."})
	}
	if bid.JobPost.PostedByID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "Only the job owner may accept or reject bids."})
	}
	if bid.Status != models.BidStatusPending {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Only pending bids can be accepted or rejected."})
	}

	bid.Status = decision
	if err := database.DB.Save(&bid).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update bid"})
	}
	return c.JSON(bid)
}

func AcceptBid(c *fiber.Ctx) error {
	return decideBid(c, models.BidStatusAccepted)
}

func RejectBid(c *fiber.Ctx) error {
	return decideBid(c, models.BidStatusRejected)
}

// CloseBid lets the bidding tutor withdraw a still-pending bid.
func CloseBid(c *fiber.Ctx) error {
	user := currentUser(c)
	tutor := teacherProfileFor(user.ID)
	if tutor == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Teacher profile does not exist. Please create a teacher profile first."})
	}

	var bid models.Bid
	if err := database.DB.First(&bid, "id = ?", c.Params("bidId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Bid not found."})
	}
	if bid.TutorID != tutor.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "Only the bidding tutor may close this bid."})
	}
	if bid.Status != models.BidStatusPending {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Only pending bids can be closed."})
	}

	bid.Status = models.BidStatusClosed
	if err := database.DB.Save(&bid).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to close bid"})
	}
	return c.JSON(bid)
}
