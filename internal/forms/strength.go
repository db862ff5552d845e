package forms

// Strength rates a password while it is typed.
type Strength struct {
	Score int
	Label string
	Color string
}

// PasswordStrength scores one point each for length of at least 8, an
// uppercase letter, a digit and a symbol. An empty password has no label.
func PasswordStrength(password string) Strength {
	if password == "" {
		return Strength{Color: "gray"}
	}

	var upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case !(r >= 'a' && r <= 'z'):
			symbol = true
		}
	}

	score := 0
	if len([]rune(password)) >= 8 {
		score++
	}
	for _, ok := range []bool{upper, digit, symbol} {
		if ok {
			score++
		}
	}

	switch score {
	case 0, 1:
		return Strength{Score: score, Label: "Weak", Color: "red-500"}
	case 2:
		return Strength{Score: score, Label: "Fair", Color: "yellow-500"}
	case 3:
		return Strength{Score: score, Label: "Good", Color: "blue-500"}
	default:
		return Strength{Score: score, Label: "Strong", Color: "green-500"}
	}
}
