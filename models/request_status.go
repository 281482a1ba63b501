package models

// RequestStatus is the lifecycle state of a maintenance request. The
// Vietnamese identifiers are the wire contract with the dashboard and are
// kept verbatim.
type RequestStatus string

const (
	StatusAwaitingAssignment RequestStatus = "CHO_PHAN_CONG"
	StatusAssignmentPending  RequestStatus = "DANG_PHAN_CONG"
	StatusConfirmed          RequestStatus = "DA_XAC_NHAN"
	StatusSurveyed           RequestStatus = "DA_KHAO_SAT"
	StatusPlanned            RequestStatus = "DA_LAP_KE_HOACH"
	StatusPlanApproved       RequestStatus = "DA_PHE_DUYET"
	StatusPlanRejected       RequestStatus = "TU_CHOI_PHE_DUYET"
	StatusInMaintenance      RequestStatus = "DANG_BAO_TRI"
	StatusAwaitingAcceptance RequestStatus = "CHO_NGHIEM_THU"
	StatusCompleted          RequestStatus = "HOAN_THANH"
	StatusAcceptanceRejected RequestStatus = "TU_CHOI_NGHIEM_THU"
	StatusCancelled          RequestStatus = "HUY"
)

var statusHumanName = map[RequestStatus]string{
	StatusAwaitingAssignment: "Chờ phân công",
	StatusAssignmentPending:  "Đang phân công",
	StatusConfirmed:          "Đã xác nhận",
	StatusSurveyed:           "Đã khảo sát",
	StatusPlanned:            "Đã lập kế hoạch",
	StatusPlanApproved:       "Đã phê duyệt",
	StatusPlanRejected:       "Từ chối phê duyệt",
	StatusInMaintenance:      "Đang bảo trì",
	StatusAwaitingAcceptance: "Chờ nghiệm thu",
	StatusCompleted:          "Hoàn thành",
	StatusAcceptanceRejected: "Từ chối nghiệm thu",
	StatusCancelled:          "Hủy",
}

func (s RequestStatus) ToHuman() string {
	if human, exist := statusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsTerminal reports whether no further transition may leave the state.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s RequestStatus) IsKnown() bool {
	_, exist := statusHumanName[s]
	return exist
}

// AllStatuses lists every known state, used by the transition table tests
// and the status dictionary endpoint.
func AllStatuses() []RequestStatus {
	return []RequestStatus{
		StatusAwaitingAssignment,
		StatusAssignmentPending,
		StatusConfirmed,
		StatusSurveyed,
		StatusPlanned,
		StatusPlanApproved,
		StatusPlanRejected,
		StatusInMaintenance,
		StatusAwaitingAcceptance,
		StatusCompleted,
		StatusAcceptanceRejected,
		StatusCancelled,
	}
}

// TransitionEvent is an action a caller may attempt on a request.
type TransitionEvent string

const (
	EventAssign            TransitionEvent = "assign"
	EventTechnicianAccept  TransitionEvent = "technician_accept"
	EventTechnicianReject  TransitionEvent = "technician_reject"
	EventSubmitSurvey      TransitionEvent = "submit_survey"
	EventSubmitPlan        TransitionEvent = "submit_plan"
	EventApprovePlan       TransitionEvent = "approve_plan"
	EventRejectPlan        TransitionEvent = "reject_plan"
	EventResubmitPlan      TransitionEvent = "resubmit_plan"
	EventStartExecution    TransitionEvent = "start_execution"
	EventCompleteExecution TransitionEvent = "complete_execution"
	EventApproveAcceptance TransitionEvent = "approve_acceptance"
	EventRejectAcceptance  TransitionEvent = "reject_acceptance"
	EventCancel            TransitionEvent = "cancel"
)

func (e TransitionEvent) IsKnown() bool {
	for _, known := range AllEvents() {
		if e == known {
			return true
		}
	}
	return false
}

func AllEvents() []TransitionEvent {
	return []TransitionEvent{
		EventAssign,
		EventTechnicianAccept,
		EventTechnicianReject,
		EventSubmitSurvey,
		EventSubmitPlan,
		EventApprovePlan,
		EventRejectPlan,
		EventResubmitPlan,
		EventStartExecution,
		EventCompleteExecution,
		EventApproveAcceptance,
		EventRejectAcceptance,
		EventCancel,
	}
}
