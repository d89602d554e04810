package seed

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wellscan/patient-portal/internal/models"
)

var sampleTests = []models.Test{
	{
		Name:            "Complete Blood Count (CBC)",
		Description:     "A comprehensive blood test that evaluates your overall health and detects various disorders.",
		Price:           850,
		Category:        "Blood Test",
		DurationMinutes: 15,
		Duration:        "15 minutes",
		Active:          true,
		Requirements:    "No special preparation required",
	},
	{
		Name:            "Lipid Profile",
		Description:     "Measures cholesterol levels and assesses cardiovascular disease risk.",
		Price:           1200,
		Category:        "Blood Test",
		DurationMinutes: 15,
		Duration:        "15 minutes",
		Active:          true,
		Requirements:    "12-hour fasting required",
	},
	{
		Name:            "Thyroid Function Test",
		Description:     "Evaluates thyroid gland function including TSH, T3, and T4 levels.",
		Price:           1500,
		Category:        "Blood Test",
		DurationMinutes: 15,
		Duration:        "15 minutes",
		Active:          true,
		Requirements:    "No special preparation required",
	},
	{
		Name:            "Chest X-Ray",
		Description:     "Imaging test to examine the chest, lungs, heart, and chest wall.",
		Price:           800,
		Category:        "X-Ray",
		DurationMinutes: 10,
		Duration:        "10 minutes",
		Active:          true,
		Requirements:    "Remove jewelry and metal objects",
	},
	{
		Name:            "Urine Routine Examination",
		Description:     "Basic urine test to detect various conditions and infections.",
		Price:           300,
		Category:        "Urine Test",
		DurationMinutes: 5,
		Duration:        "5 minutes",
		Active:          true,
		Requirements:    "Clean catch midstream urine sample",
	},
	{
		Name:            "ECG (Electrocardiogram)",
		Description:     "Records electrical activity of the heart to detect heart problems.",
		Price:           500,
		Category:        "ECG",
		DurationMinutes: 15,
		Duration:        "15 minutes",
		Active:          true,
		Requirements:    "Wear loose, comfortable clothing",
	},
	{
		Name:            "Abdominal Ultrasound",
		Description:     "Imaging test to examine organs in the abdomen.",
		Price:           2000,
		Category:        "Ultrasound",
		DurationMinutes: 30,
		Duration:        "30 minutes",
		Active:          true,
		Requirements:    "6-hour fasting required",
	},
	{
		Name:            "Blood Sugar Fasting",
		Description:     "Measures blood glucose levels after fasting to screen for diabetes.",
		Price:           200,
		Category:        "Blood Test",
		DurationMinutes: 5,
		Duration:        "5 minutes",
		Active:          true,
		Requirements:    "8-12 hour fasting required",
	},
}

// Tests seeds the sample catalog once; an already-populated table is left
// untouched.
func Tests(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Test{}).Count(&count).Error; err != nil {
		zap.L().Error("failed to count tests", zap.Error(err))
		return
	}

	if count > 0 {
		zap.L().Debug("test catalog already seeded", zap.Int64("count", count))
		return
	}

	if err := db.Create(&sampleTests).Error; err != nil {
		zap.L().Error("failed to seed tests", zap.Error(err))
		return
	}

	zap.L().Info("sample tests created", zap.Int("count", len(sampleTests)))
}
