package ridelogfilter

import (
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/theoremus-urban-solutions/ridelog-filter/geo"
	"github.com/theoremus-urban-solutions/ridelog-filter/ridelog"
	"github.com/theoremus-urban-solutions/ridelog-filter/schema"
	"github.com/theoremus-urban-solutions/ridelog-filter/xlsx"
)

func (s *Server) handleFilterDriver(w http.ResponseWriter, r *http.Request) {
	s.processFilter(w, r, false)
}

func (s *Server) handleFilterDriverBatch(w http.ResponseWriter, r *http.Request) {
	if _, err := s.requireBearer(r); err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	s.processFilter(w, r, true)
}

// processFilter runs the whole request pipeline: decode, normalize headers,
// parse, filter, enrich, re-encode. The working table lives and dies inside
// this call.
func (s *Server) processFilter(w http.ResponseWriter, r *http.Request, batch bool) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	reqID := uuid.NewString()
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)

	fr, err := parseFilterRequest(r, s.cfg.Server.MaxUploadBytes, batch)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	log.Printf("[%s] filter request driver=%q directives=%d geo=%v rows=%d",
		reqID, fr.driver, len(fr.directives), fr.geo, len(fr.sheet.Rows))

	mapping, err := schema.Normalize(fr.sheet.Headers)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	table, err := ridelog.NewTable(mapping, fr.sheet.Rows)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	var enr ridelog.Enricher
	if fr.geo {
		enr = geo.NewEnricher(s.cfg.Geo)
	} else {
		enr = geo.PickupStamp{Address: s.cfg.Geo.BaseAddress}
	}
	opts := ridelog.Options{Driver: fr.driver, Directives: fr.directives}
	if err := ridelog.Run(r.Context(), table, opts, enr); err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	buf, err := xlsx.Write(table, fr.geo)
	if err != nil {
		log.Printf("[%s] encode failed: %v", reqID, err)
		writeError(w, http.StatusInternalServerError, "failed to encode result workbook")
		return
	}
	log.Printf("[%s] done rows=%d", reqID, len(table.Records))

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=filtered_%s.xlsx", ridelog.NameKey(fr.driver)))
	_, _ = w.Write(buf.Bytes())
}
