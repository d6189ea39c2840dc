// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"github.com/Swetcha17/recruitment-automation/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalProfile serializes a CandidateProfile to bytes.
func MarshalProfile(profile *core.CandidateProfile) []byte {
	buf := make([]byte, core.CandidateProfileMUS.Size(*profile))
	core.CandidateProfileMUS.Marshal(*profile, buf)
	return buf
}

// UnmarshalProfile deserializes a CandidateProfile from bytes.
func UnmarshalProfile(data []byte) (*core.CandidateProfile, error) {
	profile, _, err := core.CandidateProfileMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// MarshalVacancy serializes a Vacancy to bytes.
func MarshalVacancy(vacancy *core.Vacancy) []byte {
	buf := make([]byte, core.VacancyMUS.Size(*vacancy))
	core.VacancyMUS.Marshal(*vacancy, buf)
	return buf
}

// UnmarshalVacancy deserializes a Vacancy from bytes.
func UnmarshalVacancy(data []byte) (*core.Vacancy, error) {
	vacancy, _, err := core.VacancyMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &vacancy, nil
}

// MarshalBuildStatus serializes a BuildStatus to bytes.
func MarshalBuildStatus(status *core.BuildStatus) []byte {
	buf := make([]byte, core.BuildStatusMUS.Size(*status))
	core.BuildStatusMUS.Marshal(*status, buf)
	return buf
}

// UnmarshalBuildStatus deserializes a BuildStatus from bytes.
func UnmarshalBuildStatus(data []byte) (*core.BuildStatus, error) {
	status, _, err := core.BuildStatusMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &status, nil
}
