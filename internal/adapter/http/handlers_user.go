package adapthttp

import (
	"net/http"
	"strconv"
	"strings"

	"pokedex/internal/domain"
)

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeSuccess(w, http.StatusOK, map[string]any{"user": userFrom(r).Public()})

	case http.MethodPut:
		var req struct {
			Username string `json:"username"`
		}
		if err := parseJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		user, err := s.users.UpdateProfile(r.Context(), userFrom(r), req.Username)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, map[string]any{
			"message": "profile updated",
			"user":    user,
		})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"stats": s.users.Stats(userFrom(r))})
}

func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r)
	switch r.Method {
	case http.MethodGet:
		pub := u.Public()
		writeSuccess(w, http.StatusOK, map[string]any{
			"favoritos": pub.Favorites,
			"total":     len(pub.Favorites),
		})

	case http.MethodPost:
		var req struct {
			PokemonID int `json:"pokemonId"`
		}
		if err := parseJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		favorites, err := s.users.AddFavorite(r.Context(), u, req.PokemonID)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, map[string]any{
			"message":   "pokemon added to favorites",
			"favoritos": favorites,
		})

	case http.MethodDelete:
		if err := s.users.ClearFavorites(r.Context(), u); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, map[string]any{
			"message":   "all favorites removed",
			"favoritos": []int{},
		})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	}
}

func (s *Server) handleFavoriteByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/user/favoritos/")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid pokemon id", nil)
		return
	}

	favorites, err := s.users.RemoveFavorite(r.Context(), userFrom(r), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"message":   "pokemon removed from favorites",
		"favoritos": favorites,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r)
	switch r.Method {
	case http.MethodGet:
		pub := u.Public()
		writeSuccess(w, http.StatusOK, map[string]any{
			"historial": pub.History,
			"total":     len(pub.History),
		})

	case http.MethodPost:
		var req struct {
			ID     int    `json:"id"`
			Name   string `json:"name"`
			Sprite string `json:"sprite"`
		}
		if err := parseJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		history, err := s.users.AddHistory(r.Context(), u, domain.HistoryEntry{
			ID:     req.ID,
			Name:   req.Name,
			Sprite: req.Sprite,
		})
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, map[string]any{
			"message":   "search added to history",
			"historial": history,
		})

	case http.MethodDelete:
		if err := s.users.ClearHistory(r.Context(), u); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, map[string]any{
			"message":   "search history cleared",
			"historial": []domain.HistoryEntry{},
		})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	}
}
