package core

import "testing"

// rowText reads row y back as plain text.
func rowText(s *Screen, y int) string {
	runes := make([]rune, s.Width())
	for x := range runes {
		runes[x] = s.GetCell(x, y).Rune
	}
	return string(runes)
}

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Errorf("New screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(0, 0, 10, 10), 'X', ColorRed)

	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Errorf("After Clear, expected blank at (%d, %d), got %+v", x, y, c)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello", ColorCyan)

	for i, ch := range "Hello" {
		c := s.GetCell(2+i, 1)
		if c.Rune != ch || c.Color != ColorCyan {
			t.Errorf("DrawText: expected %q in cyan at (%d, 1), got %+v", ch, 2+i, c)
		}
	}

	// Only "He" fits
	s.DrawText(18, 0, "Hello", ColorDefault)
	if got := rowText(s, 0)[18:]; got != "He" {
		t.Errorf("clipped text = %q, expected \"He\"", got)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	tests := []struct {
		name  string
		width int
		text  string
		x     int
	}{
		{"even", 20, "Hi", 9},
		{"odd", 21, "Hi", 9},
		{"wider than screen", 4, "PAUSED", -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(tc.width, 3)
			s.DrawTextCentered(1, tc.text, ColorBrightYellow)

			for i, ch := range tc.text {
				x := tc.x + i
				if x < 0 || x >= tc.width {
					continue
				}
				c := s.GetCell(x, 1)
				if c.Rune != ch || c.Color != ColorBrightYellow {
					t.Errorf("cell (%d, 1) = %+v, expected %q in bright yellow", x, c, ch)
				}
			}
		})
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 3), '#', ColorBisque)

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if c := s.GetCell(x, y); c.Rune != '#' || c.Color != ColorBisque {
				t.Errorf("DrawRect: expected '#' at (%d, %d), got %+v", x, y, c)
			}
		}
	}

	if s.GetCell(1, 1).Rune != ' ' || s.GetCell(5, 5).Rune != ' ' {
		t.Error("DrawRect should not affect outside area")
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetColored(1, 2, '@', ColorCyan)

	c := s.GetCell(1, 2)
	if c.Rune != '@' || c.Color != ColorCyan {
		t.Errorf("GetCell(1, 2) = %+v, expected '@' in cyan", c)
	}

	s.SetColored(9, 9, '@', ColorRed) // ignored
	if c := s.GetCell(9, 9); c.Rune != ' ' || c.Color != ColorDefault {
		t.Errorf("out of bounds GetCell = %+v, expected blank", c)
	}

	s.Clear()
	if c := s.GetCell(1, 2); c.Color != ColorDefault {
		t.Errorf("after Clear color = %v, expected default", c.Color)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello", ColorDefault)
	s.DrawText(0, 5, "World", ColorDefault)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if got := rowText(s, 0); got != "Hello   " {
		t.Errorf("Content should be preserved, row 0 = %q", got)
	}

	s.Resize(15, 8)
	if got := rowText(s, 0)[:5]; got != "Hello" {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", got)
	}
	if got := rowText(s, 5); got != "               " {
		t.Errorf("row cut by the shrink should stay blank, got %q", got)
	}
}
