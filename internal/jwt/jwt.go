package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	jwtgo "github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"xuanwei-server/internal/config"
)

// Issuer issues the JWT
const Issuer = "server.xuanwei"

// Audience is the intended JWT audience
const Audience = "xuanwei.server"

var publicKey *rsa.PublicKey
var privateKey *rsa.PrivateKey

// LoadKeys will load the public and private keys
// this method should only be called once.
func LoadKeys() {
	cfg := config.Instance().JWT
	privateKey = loadPrivateKey(cfg.PrivateKey)
	publicKey = loadPublicKey(cfg.PublicKey)
}

// Sign will sign a JWT for the player ID
func Sign(playerID int64) (string, error) {
	if privateKey == nil {
		panic("LoadKeys() not called")
	}

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.StandardClaims{
		Audience: Audience,
		Id:       uuid.New().String(),
		IssuedAt: time.Now().Unix(),
		Issuer:   Issuer,
		Subject:  strconv.FormatInt(playerID, 10),
	})

	return token.SignedString(privateKey)
}

// ValidPlayerID will validate a signed JWT and return the player ID it was
// issued for
func ValidPlayerID(signedString string) (int64, error) {
	if publicKey == nil {
		panic("LoadKeys() not called")
	}

	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.StandardClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodRSA); !ok {
			return nil, errors.New("expected RS256 signing method")
		}

		return publicKey, nil
	})

	if err != nil {
		return 0, err
	}

	if token.Valid {
		if claims, ok := token.Claims.(*jwtgo.StandardClaims); ok {
			if claims.Audience != Audience {
				return 0, errors.New("invalid audience")
			}

			if claims.Issuer != Issuer {
				return 0, errors.New("invalid issuer")
			}

			return strconv.ParseInt(claims.Subject, 10, 64)
		}

		return 0, fmt.Errorf("expected jwt.StandardClaims, got %T", token.Claims)
	}

	logrus.Warn("token claims were not valid. did not expect to reach this code")
	return 0, errors.New("claims were not valid")
}

func loadPublicKey(path string) *rsa.PublicKey {
	b, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).Fatal("could not read file")
	}

	pem, err := jwtgo.ParseRSAPublicKeyFromPEM(b)
	if err != nil {
		logrus.WithError(err).Fatal("could not parse RSA public key")
	}

	return pem
}

func loadPrivateKey(path string) *rsa.PrivateKey {
	b, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).Fatal("could not read file")
	}

	pem, err := jwtgo.ParseRSAPrivateKeyFromPEM(b)
	if err != nil {
		logrus.WithError(err).Fatal("could not parse RSA private key")
	}

	return pem
}
