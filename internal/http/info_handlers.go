package httpapi

import "net/http"

const defaultTrainDataLimit = 100

func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.Infos.Info(r.Context(), defaultTrainDataLimit, 0)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, info)
}

func (s *Server) GetSubjectArea(w http.ResponseWriter, r *http.Request) {
	subjectArea, err := s.Infos.SubjectArea(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"subject_area": subjectArea})
}

func (s *Server) GetTargetAttribute(w http.ResponseWriter, r *http.Request) {
	targetAttribute, err := s.Infos.TargetAttribute(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"target_attribute": targetAttribute})
}

func (s *Server) GetTrainData(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), defaultTrainDataLimit)
	offset := parseInt(r.URL.Query().Get("offset"), 0)
	page, err := s.Infos.TrainData(r.Context(), limit, offset)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}
