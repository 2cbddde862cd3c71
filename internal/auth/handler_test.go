package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateTokenRoundTrip(t *testing.T) {
	tokenString, err := GenerateToken("user-abc-123")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return JWTSecret, nil
	})
	if err != nil {
		t.Fatalf("token failed to parse: %v", err)
	}
	if !token.Valid {
		t.Fatal("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not MapClaims")
	}
	if claims["sub"] != "user-abc-123" {
		t.Errorf("sub = %v, want user-abc-123", claims["sub"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Error("token has no expiry")
	}
}

func TestGenerateTokenSigningMethod(t *testing.T) {
	tokenString, err := GenerateToken("u1")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if token.Method.Alg() != "HS256" {
		t.Errorf("alg = %s, want HS256", token.Method.Alg())
	}
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		otp := generateOTP()
		if len(otp) != 6 {
			t.Fatalf("otp %q has length %d, want 6", otp, len(otp))
		}
		for _, c := range otp {
			if c < '0' || c > '9' {
				t.Fatalf("otp %q contains non-digit %q", otp, c)
			}
		}
	}
}
