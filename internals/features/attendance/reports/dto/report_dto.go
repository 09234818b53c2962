package dto

import (
	presensiDTO "presensiku_backend/internals/features/attendance/presensi/dto"
)

// DailyReportResponse: rekap presensi satu hari (kunci hari dalam UTC).
type DailyReportResponse struct {
	ReportDate string                                 `json:"reportDate"`
	TotalData  int64                                  `json:"totalData"`
	Data       []presensiDTO.PresensiWithUserResponse `json:"data"`
}
