package service

import "math/rand"

// Motivational lines shown on the portal home page.
var affirmations = []string{
	"Konsistensi kecil membawa hasil besar",
	"Belajar hari ini untuk sukses besok",
	"Progress sekecil apapun tetap progress",
	"Semangat menjalani hari ini!",
	"Kamu mampu menggapai impianmu!",
	"Setiap usaha akan membuahkan hasil",
	"Jangan menyerah, kamu lebih kuat dari yang kamu kira",
	"Hari ini adalah hari yang indah untuk belajar",
	"Kesuksesan adalah hasil dari kerja keras yang konsisten",
	"Percayalah pada dirimu sendiri",
}

// AffirmationService serves a random affirmation per request.
type AffirmationService struct {
	pick func(n int) int
}

// NewAffirmationService constructs an AffirmationService.
func NewAffirmationService() *AffirmationService {
	return &AffirmationService{pick: rand.Intn}
}

// Daily returns one affirmation.
func (s *AffirmationService) Daily() string {
	return affirmations[s.pick(len(affirmations))]
}
