package scoring

import "testing"

func TestDemandScoreBounds(t *testing.T) {
	t.Parallel()

	s := Default()

	if got := s.DemandScore("обычные городские новости", ""); got != 5 {
		t.Fatalf("no-signal score = %d, want floor 5", got)
	}

	loaded := "склад warehouse distribution center logistics hub fulfillment center " +
		"supply chain распределительный центр тендер закупки инвестиции ваканс jobs алматы"
	if got := s.DemandScore(loaded, ""); got != 100 {
		t.Fatalf("saturated score = %d, want 100", got)
	}
}

func TestDemandScoreDeterministic(t *testing.T) {
	t.Parallel()

	s := Default()
	title := "Открытие нового распределительного центра в Алматы"
	first := s.DemandScore(title, "")
	for i := 0; i < 10; i++ {
		if got := s.DemandScore(title, ""); got != first {
			t.Fatalf("score changed between runs: %d != %d", got, first)
		}
	}
}

func TestDistributionCenterScenario(t *testing.T) {
	t.Parallel()

	s := Default()
	title := "Открытие нового распределительного центра в Алматы"

	if segment := s.DetectSegment(title, ""); segment != SegmentDistrib {
		t.Fatalf("segment = %q, want %q", segment, SegmentDistrib)
	}
	if !s.HasRegion(title, "") {
		t.Fatal("region marker not detected")
	}
	if score := s.DemandScore(title, ""); score < 20 {
		t.Fatalf("score = %d, want >= 20 (strong signal plus region)", score)
	}
	if timing := s.DetectTiming(title, ""); timing != Timing0to3 {
		t.Fatalf("timing = %q, want %q", timing, Timing0to3)
	}
}

func TestDetectSegmentFirstMatchWins(t *testing.T) {
	t.Parallel()

	s := Default()

	// Matches both the e-commerce and distribution tables; slice order
	// decides.
	text := "маркетплейс строит распределительный центр"
	if segment := s.DetectSegment(text, ""); segment != SegmentECom {
		t.Fatalf("segment = %q, want %q", segment, SegmentECom)
	}

	if segment := s.DetectSegment("ничего складского", ""); segment != SegmentOther {
		t.Fatalf("fallback segment = %q, want %q", segment, SegmentOther)
	}
}

func TestDetectTimingDefault(t *testing.T) {
	t.Parallel()

	s := Default()
	if timing := s.DetectTiming("нейтральный заголовок", ""); timing != Timing3to12 {
		t.Fatalf("default timing = %q, want %q", timing, Timing3to12)
	}
}

func TestVacancyBonus(t *testing.T) {
	t.Parallel()

	s := Default()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"no warehouse signal", "менеджер по продажам", 0},
		{"strong only", "заведующий склад", 20},
		{"strong plus wms", "warehouse wms specialist", 20 + 10},
		{"every bonus group", "warehouse wms cross-dock fulfillment inventory cold pick-pack", 20 + 60},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := s.VacancyBonus(tt.text); got != tt.want {
				t.Fatalf("VacancyBonus(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestGuessCompany(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{"Almaty Logistics LLC - Warehouse Manager | Almaty", "Almaty Logistics LLC"},
		{"Magnum | открывает РЦ", "Magnum"},
		{"\"Казпочта\" : расширение сети", "Казпочта"},
		{"Без разделителей", "Без разделителей"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := GuessCompany(tt.title); got != tt.want {
			t.Fatalf("GuessCompany(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
