package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/idena-network/ecosystem-client/types"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

const (
	supportedVersion = "v1"

	codeBadRequest   = 4001
	codeUnauthorized = 4011
	codeNotFound     = 4041
)

type session struct {
	userId     string
	expiration time.Time
}

// Server is a development stand-in for the ecosystem API: it signs users in, lists offers and accepts orders.
type Server struct {
	tokenLifeTime time.Duration
	offers        []types.Offer
	mutex         sync.Mutex
	counter       int
	sessions      map[string]session
	httpServer    *http.Server
}

func NewServer(port int, tokenLifeTime time.Duration) *Server {
	s := &Server{
		tokenLifeTime: tokenLifeTime,
		offers:        defaultOffers(),
		sessions:      make(map[string]session),
	}
	s.httpServer = &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: s.Handler()}
	return s
}

func defaultOffers() []types.Offer {
	return []types.Offer{
		{Id: "offer-1", Title: "Daily poll", Description: "Answer three questions", Amount: 20, OfferType: "earn"},
		{Id: "offer-2", Title: "Sticker pack", Description: "Unlock a sticker pack", Amount: 100, OfferType: "spend"},
	}
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().PathPrefix("/{version}").Subrouter()
	s.initRouter(router)
	headersOk := handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization", "X-Request-Id"})
	originsOk := handlers.AllowedOrigins([]string{"*"})
	methodsOk := handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "PUT", "OPTIONS"})
	return handlers.CORS(originsOk, headersOk, methodsOk)(s.requestFilter(router))
}

// Start blocks until the server is stopped.
func (s *Server) Start() {
	log.Info(fmt.Sprintf("Stub server listening on %v", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		panic(err)
	}
}

func (s *Server) Stop() {
	if err := s.httpServer.Shutdown(context.Background()); err != nil {
		panic(err)
	}
}

func (s *Server) requestFilter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqId := s.generateReqId()
		log.Debug(fmt.Sprintf("Got request %v (%v), url: %v, from: %v", reqId, r.Header.Get("X-Request-Id"), r.URL, GetIP(r)))
		defer log.Debug(fmt.Sprintf("Completed request %v", reqId))
		r.URL.Path = strings.ToLower(r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) generateReqId() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	id := s.counter
	s.counter++
	return id
}

func GetIP(r *http.Request) string {
	header := r.Header.Get("X-Forwarded-For")
	if len(header) > 0 {
		return strings.Split(header, ", ")[0]
	}
	if strings.Contains(r.RemoteAddr, ":") {
		return strings.Split(r.RemoteAddr, ":")[0]
	}
	return r.RemoteAddr
}

func (s *Server) initRouter(router *mux.Router) {
	router.Path("/users").HandlerFunc(s.checkVersion(s.signIn)).Methods("POST")
	router.Path("/offers").HandlerFunc(s.checkVersion(s.getOffers)).Methods("GET")
	router.Path("/offers/{id}/orders").HandlerFunc(s.checkVersion(s.createOrder)).Methods("POST")
}

func (s *Server) checkVersion(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["version"] != supportedVersion {
			writeError(w, http.StatusNotFound, codeNotFound, "unsupported version")
			return
		}
		next(w, r)
	}
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	request := types.SignInData{}
	if err := json.Unmarshal(body, &request); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid sign in data")
		return
	}
	if err := validateSignIn(request); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	token := fmt.Sprintf("token-%v", uuid.New().String())
	expiration := time.Now().Add(s.tokenLifeTime).UTC()
	s.mutex.Lock()
	s.sessions[token] = session{
		userId:     request.UserId,
		expiration: expiration,
	}
	s.mutex.Unlock()
	writeResponse(w, http.StatusOK, types.AuthToken{
		Token:          token,
		ExpirationDate: expiration.Format(time.RFC3339Nano),
	})
}

func validateSignIn(request types.SignInData) error {
	if request.UserId == "" || request.DeviceId == "" {
		return errors.New("user_id and device_id are required")
	}
	switch request.SignInType {
	case types.SignInTypeWhitelist:
		return nil
	case types.SignInTypeJwt:
		if request.Jwt == nil {
			return errors.New("jwt is required")
		}
		if _, _, err := jwt.NewParser().ParseUnverified(*request.Jwt, jwt.MapClaims{}); err != nil {
			return errors.New("invalid jwt")
		}
		return nil
	default:
		return errors.New("unsupported sign in type")
	}
}

func (s *Server) authorize(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	s.mutex.Lock()
	defer s.mutex.Unlock()
	session, present := s.sessions[token]
	if !present {
		return "", false
	}
	if !time.Now().Before(session.expiration) {
		delete(s.sessions, token)
		return "", false
	}
	return session.userId, true
}

func (s *Server) getOffers(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(r); !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
		return
	}
	writeResponse(w, http.StatusOK, types.OfferList{
		Offers: s.offers,
	})
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	userId, ok := s.authorize(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
		return
	}
	offerId := mux.Vars(r)["id"]
	for _, offer := range s.offers {
		if offer.Id == offerId {
			log.Debug(fmt.Sprintf("Order for offer %v created by %v", offerId, userId))
			w.WriteHeader(http.StatusOK)
			return
		}
	}
	writeError(w, http.StatusNotFound, codeNotFound, "offer not found")
}

func writeError(w http.ResponseWriter, status int, code int, message string) {
	writeResponse(w, status, struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}{code, message})
}

func writeResponse(w http.ResponseWriter, status int, result interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Error(fmt.Sprintf("Unable to write response: %v", err))
	}
}
